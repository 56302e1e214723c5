package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	engine := NewEngine(mock, &stubInsurers{accepted: map[string]struct{}{"OSDE": {}}}, nil, nil, nil)
	return NewHandler(engine, NewLedger(mock), nil), mock
}

func TestHandlerBook(t *testing.T) {
	h, mock := newTestHandler(t)

	doctorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM availability").
		WithArgs(doctorID, "2026-09-14", "09:30").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(pgxmock.AnyArg(), doctorID, "2026-09-14", "09:30",
			"Ana García", "ana@example.com", "OSDE", "", false, "control anual").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("DELETE FROM availability").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	body, _ := json.Marshal(validRequest(doctorID))
	req := httptest.NewRequest(http.MethodPost, "/api/book", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Book(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["booking_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerBookConflict(t *testing.T) {
	h, mock := newTestHandler(t)

	doctorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM availability").
		WithArgs(doctorID, "2026-09-14", "09:30").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	body, _ := json.Marshal(validRequest(doctorID))
	req := httptest.NewRequest(http.MethodPost, "/api/book", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Book(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerBookMissingFields(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/book",
		bytes.NewReader([]byte(`{"doctor_id":"x"}`)))
	rec := httptest.NewRecorder()
	h.Book(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerBookBadJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/book",
		bytes.NewReader([]byte(`{not json`)))
	rec := httptest.NewRecorder()
	h.Book(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerList(t *testing.T) {
	h, mock := newTestHandler(t)

	cols := []string{
		"id", "doctor_id", "date", "time", "patient_name", "patient_email",
		"patient_insurer", "patient_insurer_other", "out_of_network",
		"reason", "created_at", "name", "specialty",
	}
	mock.ExpectQuery("SELECT (.+) FROM bookings b").
		WillReturnRows(pgxmock.NewRows(cols).AddRow(
			uuid.NewString(), uuid.NewString(), "2026-09-14", "09:30",
			"Ana García", "ana@example.com", "OSDE", "", false,
			"control anual", time.Now(), "Dra. Pérez", "Clínica Médica",
		))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var bookings []*Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, "Dra. Pérez", bookings[0].DoctorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerListFiltered(t *testing.T) {
	h, mock := newTestHandler(t)

	doctorID := uuid.NewString()
	mock.ExpectQuery("SELECT (.+) FROM bookings b").
		WithArgs(doctorID, "2026-09-14").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodGet,
		"/api/admin/bookings?doctor_id="+doctorID+"&date=2026-09-14", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerCancel(t *testing.T) {
	h, mock := newTestHandler(t)

	bookingID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM bookings").
		WithArgs(bookingID).
		WillReturnRows(pgxmock.NewRows([]string{"doctor_id", "date", "time"}).
			AddRow(uuid.New(), "2026-09-14", "09:30"))
	mock.ExpectExec("INSERT INTO availability").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "2026-09-14", "09:30").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	rec := httptest.NewRecorder()
	h.Cancel(rec, cancelRequest(bookingID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerCancelNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Cancel(rec, cancelRequest("nope"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// cancelRequest builds a DELETE request with the chi URL param wired in.
func cancelRequest(bookingID string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/bookings/"+bookingID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("bookingID", bookingID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
