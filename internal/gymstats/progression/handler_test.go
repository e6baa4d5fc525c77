package progression_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/volume"
)

func TestHandler_HandlePrevious(t *testing.T) {
	ctrl := gomock.NewController(t)
	serviceMock := NewMockprogressionService(ctrl)
	r := mux.NewRouter()
	progression.NewHandler(serviceMock).SetupRoutes(r)

	order := 2
	weight := 60.0
	serviceMock.EXPECT().
		PreviousValues(gomock.Any(), 7, 1, &order).
		Return(&progression.PreviousValues{
			ExerciseID:      1,
			Order:           2,
			IsExactPosition: true,
			Fields:          volume.Fields{Weight: &weight},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/exercises/1/previous?order=2", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var prev progression.PreviousValues
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prev))
	assert.True(t, prev.IsExactPosition)
	assert.Equal(t, 60.0, *prev.Weight)

	// invalid order
	req = httptest.NewRequest(http.MethodGet, "/exercises/1/previous?order=-1", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 7))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// anonymous
	req = httptest.NewRequest(http.MethodGet, "/exercises/1/previous", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_HandleRecommendation(t *testing.T) {
	ctrl := gomock.NewController(t)
	serviceMock := NewMockprogressionService(ctrl)
	r := mux.NewRouter()
	progression.NewHandler(serviceMock).SetupRoutes(r)

	serviceMock.EXPECT().
		Recommendation(gomock.Any(), 7, 1, nil).
		Return(nil, progression.ErrNoPreviousSet)
	serviceMock.EXPECT().
		Recommendation(gomock.Any(), 7, 2, nil).
		Return(nil, apperr.Validation("recommendations are disabled"))

	req := httptest.NewRequest(http.MethodGet, "/exercises/1/recommendation", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/exercises/2/recommendation", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 7))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "recommendations are disabled\n", rec.Body.String())
}
