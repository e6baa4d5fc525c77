package stats

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=stats_mocks_test.go -package=stats_test

type statsService interface {
	Weekly(ctx context.Context, viewerID, userID int) (*WeeklyStats, error)
	ExerciseTrend(ctx context.Context, userID, exerciseID int, from, to *time.Time) ([]TrendPoint, error)
	SessionView(ctx context.Context, viewerID, sessionID int) (*SessionView, error)
}

type Handler struct {
	service statsService
}

func NewHandler(service statsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/users/{id:[0-9]+}/stats/weekly", handler.HandleWeekly).Methods("GET", "OPTIONS").Name("weekly-stats")
	r.HandleFunc("/exercises/{id:[0-9]+}/trend", handler.HandleTrend).Methods("GET", "OPTIONS").Name("exercise-trend")
	r.HandleFunc("/sessions/{id:[0-9]+}", handler.HandleSessionView).Methods("GET", "OPTIONS").Name("session-view")
}

func (handler *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.weekly")
	defer span.End()

	userID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}
	viewerID, _ := auth.UserIDFromContext(ctx)

	weekly, err := handler.service.Weekly(ctx, viewerID, userID)
	if err != nil {
		log.Errorf("failed to get weekly stats for user %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to get weekly stats")
		return
	}

	pkg.WriteJSON(w, weekly, http.StatusOK)
}

func (handler *Handler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.trend")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exerciseID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	from, err := parseDateParam(r, "from")
	if err != nil {
		http.Error(w, "error, invalid from date", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		http.Error(w, "error, invalid to date", http.StatusBadRequest)
		return
	}
	if to != nil {
		// inclusive day
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	trend, err := handler.service.ExerciseTrend(ctx, userID, exerciseID, from, to)
	if err != nil {
		log.Errorf("failed to get trend for exercise %d: %s", exerciseID, err)
		apperr.WriteHTTP(w, err, "failed to get exercise trend")
		return
	}

	pkg.WriteJSON(w, trend, http.StatusOK)
}

func (handler *Handler) HandleSessionView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.sessionView")
	defer span.End()

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}
	viewerID, _ := auth.UserIDFromContext(ctx)

	view, err := handler.service.SessionView(ctx, viewerID, sessionID)
	if err != nil {
		log.Errorf("failed to get session view %d: %s", sessionID, err)
		apperr.WriteHTTP(w, err, "failed to get session")
		return
	}

	pkg.WriteJSON(w, view, http.StatusOK)
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
