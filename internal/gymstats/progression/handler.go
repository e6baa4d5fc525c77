package progression

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=progression_mocks_test.go -package=progression_test

type progressionService interface {
	PreviousValues(ctx context.Context, userID, exerciseID int, order *int) (*PreviousValues, error)
	Recommendation(ctx context.Context, userID, exerciseID int, order *int) (*Recommendation, error)
}

type Handler struct {
	service progressionService
}

func NewHandler(service progressionService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/exercises/{id:[0-9]+}/previous", handler.HandlePrevious).Methods("GET", "OPTIONS").Name("exercise-previous")
	r.HandleFunc("/exercises/{id:[0-9]+}/recommendation", handler.HandleRecommendation).Methods("GET", "OPTIONS").Name("exercise-recommendation")
}

func (handler *Handler) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.previous")
	defer span.End()

	userID, exerciseID, order, ok := parseParams(w, r)
	if !ok {
		return
	}

	prev, err := handler.service.PreviousValues(ctx, userID, exerciseID, order)
	if err != nil {
		if !apperr.Is(err, apperr.KindNotFound) {
			log.Errorf("failed to get previous values for exercise %d: %s", exerciseID, err)
		}
		apperr.WriteHTTP(w, err, "failed to get previous values")
		return
	}

	pkg.WriteJSON(w, prev, http.StatusOK)
}

func (handler *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.recommendation")
	defer span.End()

	userID, exerciseID, order, ok := parseParams(w, r)
	if !ok {
		return
	}

	rec, err := handler.service.Recommendation(ctx, userID, exerciseID, order)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnknown || apperr.Is(err, apperr.KindIntegrity) {
			log.Errorf("failed to get recommendation for exercise %d: %s", exerciseID, err)
		}
		apperr.WriteHTTP(w, err, "failed to get recommendation")
		return
	}

	pkg.WriteJSON(w, rec, http.StatusOK)
}

func parseParams(w http.ResponseWriter, r *http.Request) (userID, exerciseID int, order *int, ok bool) {
	userID, ok = auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, 0, nil, false
	}

	exerciseID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return 0, 0, nil, false
	}

	if orderParam := r.URL.Query().Get("order"); orderParam != "" {
		o, err := strconv.Atoi(orderParam)
		if err != nil || o < 0 {
			http.Error(w, "error, order must be a non-negative number", http.StatusBadRequest)
			return 0, 0, nil, false
		}
		order = &o
	}

	return userID, exerciseID, order, true
}
