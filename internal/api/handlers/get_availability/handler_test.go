package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailability "github.com/deskhive/space-booking-service/internal/usecase/get_availability"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *getAvailability.Response
	err  error

	gotReq *getAvailability.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/spaces/{spaceId}/availability", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailability.Response{
		SpaceID:     1,
		IsAvailable: true,
		FreeSlots: []getAvailability.FreeSlot{
			{Start: "09:00", End: "10:00", PriceMinor: 50000},
		},
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/spaces/1/availability?date=2026-09-07", nil)
	newRouter(NewHandler(uc, nopLogger{})).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.IsAvailable)
	require.Len(t, body.FreeSlots, 1)
	assert.Equal(t, "09:00", body.FreeSlots[0].Start)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(1), uc.gotReq.SpaceID)
	assert.Equal(t, "2026-09-07", uc.gotReq.Date.Format("2006-01-02"))
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "missing date", url: "/api/v1/spaces/1/availability"},
		{name: "malformed date", url: "/api/v1/spaces/1/availability?date=07.09.2026"},
		{name: "non-numeric space id", url: "/api/v1/spaces/abc/availability?date=2026-09-07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			newRouter(NewHandler(&fakeUseCase{}, nopLogger{})).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_NotFound(t *testing.T) {
	uc := &fakeUseCase{err: getAvailability.ErrSpaceNotFound}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/spaces/99/availability?date=2026-09-07", nil)
	newRouter(NewHandler(uc, nopLogger{})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: getAvailability.ErrInternal}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/spaces/1/availability?date=2026-09-07", nil)
	newRouter(NewHandler(uc, nopLogger{})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
