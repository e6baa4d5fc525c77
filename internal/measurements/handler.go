package measurements

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=measurements_mocks_test.go -package=measurements_test

type measurementsService interface {
	Log(ctx context.Context, userID int, req LogRequest) (*Measurement, error)
	List(ctx context.Context, userID int, typeParam string) ([]Measurement, error)
	Delete(ctx context.Context, userID, id int) error
}

type Handler struct {
	service measurementsService
}

func NewHandler(service measurementsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/measurements", handler.HandleLog).Methods("POST", "OPTIONS").Name("new-measurement")
	r.HandleFunc("/measurements", handler.HandleList).Methods("GET", "OPTIONS").Name("list-measurements")
	r.HandleFunc("/measurements/{id:[0-9]+}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-measurement")
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.log")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req LogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new measurement, unmarshal json params: %s", err)
		http.Error(w, "invalid measurement payload", http.StatusBadRequest)
		return
	}

	m, err := handler.service.Log(ctx, userID, req)
	if err != nil {
		log.Tracef("log measurement for user %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to log measurement")
		return
	}

	pkg.WriteJSON(w, m, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	list, err := handler.service.List(ctx, userID, r.URL.Query().Get("type"))
	if err != nil {
		log.Errorf("failed to list measurements for user %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to list measurements")
		return
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.measurements.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, userID, id); err != nil {
		log.Errorf("failed to delete measurement %d: %s", id, err)
		apperr.WriteHTTP(w, err, "failed to delete measurement")
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}
