package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerSave(t *testing.T) {
	repo, mock := newTestRepo(t)
	h := NewHandler(repo, nil, nil)

	doctorID := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO availability").
		WithArgs(pgxmock.AnyArg(), doctorID, "2026-09-14", "09:00").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	body, _ := json.Marshal(SaveSlotsRequest{
		DoctorID: doctorID,
		Slots:    []SlotTime{{Date: "2026-09-14", Time: "09:00"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/availability", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["inserted"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerSaveMissingDoctor(t *testing.T) {
	repo, _ := newTestRepo(t)
	h := NewHandler(repo, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/availability",
		bytes.NewReader([]byte(`{"slots":[{"date":"2026-09-14","time":"09:00"}]}`)))
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerDelete(t *testing.T) {
	repo, mock := newTestRepo(t)
	h := NewHandler(repo, nil, nil)

	slotID := uuid.NewString()
	mock.ExpectExec("DELETE FROM availability").
		WithArgs(slotID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/availability/"+slotID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slotID", slotID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["deleted"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
