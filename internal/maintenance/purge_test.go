package maintenance

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPurger(t *testing.T) (*Purger, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPurger(mock, nil), mock
}

func TestRun(t *testing.T) {
	p, mock := newTestPurger(t)

	mock.ExpectExec("DELETE FROM availability").
		WithArgs("2026-08-31").
		WillReturnResult(pgxmock.NewResult("DELETE", 7))
	mock.ExpectExec("DELETE FROM bookings").
		WithArgs("2026-08-31").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	res, err := p.Run(context.Background(), "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.Slots)
	assert.Equal(t, int64(3), res.Bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeRejectsBadCutoff(t *testing.T) {
	p, mock := newTestPurger(t)

	_, err := p.PurgePastSlots(context.Background(), "31/08/2026")
	assert.Error(t, err)

	_, err = p.PurgeOldBookings(context.Background(), "")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeNothingToDelete(t *testing.T) {
	p, mock := newTestPurger(t)

	mock.ExpectExec("DELETE FROM availability").
		WithArgs("2026-01-01").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	n, err := p.PurgePastSlots(context.Background(), "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
