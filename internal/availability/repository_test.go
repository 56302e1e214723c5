package availability

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepository(mock), mock
}

func TestGenerateAndSaveIdempotent(t *testing.T) {
	repo, mock := newTestRepo(t)

	doctorID := uuid.NewString()

	// second slot already exists, ON CONFLICT absorbs it
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO availability").
		WithArgs(pgxmock.AnyArg(), doctorID, "2026-09-14", "09:00").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO availability").
		WithArgs(pgxmock.AnyArg(), doctorID, "2026-09-14", "09:30").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectCommit()

	inserted, err := repo.GenerateAndSave(context.Background(), doctorID, []SlotTime{
		{Date: "2026-09-14", Time: "09:00"},
		{Date: "2026-09-14", Time: "09:30"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateAndSaveSkipsBlankSlots(t *testing.T) {
	repo, mock := newTestRepo(t)

	doctorID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO availability").
		WithArgs(pgxmock.AnyArg(), doctorID, "2026-09-14", "09:00").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	inserted, err := repo.GenerateAndSave(context.Background(), doctorID, []SlotTime{
		{Date: "", Time: "09:00"},
		{Date: "2026-09-14", Time: "  "},
		{Date: "2026-09-14", Time: "09:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithFilters(t *testing.T) {
	repo, mock := newTestRepo(t)

	doctorID := uuid.NewString()
	cols := []string{"id", "doctor_id", "date", "time", "name", "specialty"}

	mock.ExpectQuery("SELECT (.+) FROM availability a").
		WithArgs(doctorID, "2026-09-14").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(uuid.NewString(), doctorID, "2026-09-14", "09:00", "Dra. Pérez", "Clínica Médica").
			AddRow(uuid.NewString(), doctorID, "2026-09-14", "09:30", "Dra. Pérez", "Clínica Médica"))

	slots, err := repo.List(context.Background(), ListFilter{DoctorID: doctorID, Date: "2026-09-14"})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "Dra. Pérez", slots[0].DoctorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUnfiltered(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM availability a").
		WillReturnRows(pgxmock.NewRows([]string{"id", "doctor_id", "date", "time", "name", "specialty"}))

	slots, err := repo.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newTestRepo(t)

	slotID := uuid.NewString()
	mock.ExpectExec("DELETE FROM availability").
		WithArgs(slotID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	deleted, err := repo.Delete(context.Background(), slotID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNonexistent(t *testing.T) {
	repo, mock := newTestRepo(t)

	slotID := uuid.NewString()
	mock.ExpectExec("DELETE FROM availability").
		WithArgs(slotID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.Delete(context.Background(), slotID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMalformedID(t *testing.T) {
	repo, mock := newTestRepo(t)

	// no query expected for an id that cannot be a uuid
	deleted, err := repo.Delete(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
