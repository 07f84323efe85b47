package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	cancelAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	gotReq *cancelAppointment.Request
	resp   *cancelAppointment.Response
	err    error
}

func (uc *fakeUseCase) Execute(ctx context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error) {
	uc.gotReq = req
	if uc.err != nil {
		return nil, uc.err
	}
	return uc.resp, nil
}

func doRequest(t *testing.T, uc *fakeUseCase, path string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, noopLogger{})

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/appointments/{appointmentId}", h.Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("X-User-ID", "1")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Canceled(t *testing.T) {
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)
	canceledAt := date.Add(-3 * time.Hour)
	uc := &fakeUseCase{resp: &cancelAppointment.Response{
		ID:         10,
		UserID:     1,
		ProviderID: 2,
		Date:       date,
		CanceledAt: &canceledAt,
		CreatedAt:  date.Add(-48 * time.Hour),
		UpdatedAt:  canceledAt,
	}}

	rec := doRequest(t, uc, "/api/v1/appointments/10")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(1), uc.gotReq.UserID)
	assert.Equal(t, int64(10), uc.gotReq.AppointmentID)
	assert.Contains(t, rec.Body.String(), `"canceledAt":"2025-10-15T07:00:00Z"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", cancelAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{"access denied", cancelAppointment.ErrAccessDenied, http.StatusForbidden},
		{"already canceled", cancelAppointment.ErrAlreadyCanceled, http.StatusBadRequest},
		{"too late", cancelAppointment.ErrTooLateToCancel, http.StatusBadRequest},
		{"invalid input", cancelAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"internal", cancelAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, "/api/v1/appointments/10")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	uc := &fakeUseCase{}

	rec := doRequest(t, uc, "/api/v1/appointments/abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}
