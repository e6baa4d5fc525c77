package sessions

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=sessions_mocks_test.go -package=sessions_test

type sessionsService interface {
	Ingest(ctx context.Context, userID int, req IngestRequest, raw json.RawMessage) (*IngestResult, error)
	Delete(ctx context.Context, userID, sessionID int) error
	Repeat(ctx context.Context, userID, sessionID int) (*Template, error)
}

const maxPayloadBytes = 1 << 20

type Handler struct {
	service sessionsService
	// ingestLimiter wraps the ingest route only
	ingestLimiter func(http.Handler) http.Handler
}

func NewHandler(service sessionsService, ingestLimiter func(http.Handler) http.Handler) *Handler {
	if ingestLimiter == nil {
		ingestLimiter = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{
		service:       service,
		ingestLimiter: ingestLimiter,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.Handle("/sessions", handler.ingestLimiter(http.HandlerFunc(handler.HandleIngest))).Methods("POST", "OPTIONS").Name("ingest-session")
	r.HandleFunc("/sessions/{id:[0-9]+}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")
	r.HandleFunc("/sessions/{id:[0-9]+}/repeat", handler.HandleRepeat).Methods("GET", "OPTIONS").Name("repeat-session")
}

func (handler *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.ingest")
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

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes+1))
	if err != nil {
		log.Errorf("ingest session, read body: %s", err)
		http.Error(w, "failed to read workout", http.StatusBadRequest)
		return
	}
	if len(raw) > maxPayloadBytes {
		http.Error(w, "workout payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	var req IngestRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Tracef("ingest session, unmarshal json params: %s", err)
		http.Error(w, "invalid workout payload", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Ingest(ctx, userID, req, raw)
	if err != nil {
		if apperr.Is(err, apperr.KindValidation) {
			log.Tracef("ingest session for user %d rejected: %s", userID, err)
		} else {
			log.Errorf("failed to ingest session for user %d: %s", userID, err)
		}
		apperr.WriteHTTP(w, err, "failed to save workout")
		return
	}

	pkg.WriteJSON(w, result, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.delete")
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
		log.Errorf("failed to delete session %d: %s", id, err)
		apperr.WriteHTTP(w, err, "failed to delete workout")
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}

func (handler *Handler) HandleRepeat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.repeat")
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

	template, err := handler.service.Repeat(ctx, userID, id)
	if err != nil {
		log.Errorf("failed to build repeat template for session %d: %s", id, err)
		apperr.WriteHTTP(w, err, "failed to repeat workout")
		return
	}

	pkg.WriteJSON(w, template, http.StatusOK)
}
