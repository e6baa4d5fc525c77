package routines

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

//go:generate mockgen -source=$GOFILE -destination=routines_mocks_test.go -package=routines_test

type routinesService interface {
	Create(ctx context.Context, userID int, req RoutineRequest) (*Routine, error)
	Update(ctx context.Context, userID, id int, req RoutineRequest) (*Routine, error)
	Delete(ctx context.Context, userID, id int) error
	Get(ctx context.Context, viewerID, id int) (*Routine, error)
	List(ctx context.Context, userID int) ([]Routine, error)
	SharedPage(ctx context.Context, viewerID, page, size int) (*SharedPage, error)
	Copy(ctx context.Context, userID, sharedID int) (*Routine, error)
}

type Handler struct {
	service routinesService
}

func NewHandler(service routinesService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/routines", handler.HandleCreate).Methods("POST", "OPTIONS").Name("new-routine")
	r.HandleFunc("/routines", handler.HandleList).Methods("GET", "OPTIONS").Name("list-routines")
	r.HandleFunc("/routines/{id:[0-9]+}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-routine")
	r.HandleFunc("/routines/{id:[0-9]+}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-routine")
	r.HandleFunc("/routines/{id:[0-9]+}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-routine")
	r.HandleFunc("/shared-routines/page/{page}/size/{size}", handler.HandleSharedPage).Methods("GET", "OPTIONS").Name("shared-routines-page")
	r.HandleFunc("/shared-routines/{id:[0-9]+}/copy", handler.HandleCopy).Methods("POST", "OPTIONS").Name("copy-routine")
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.create")
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

	var req RoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new routine, unmarshal json params: %s", err)
		http.Error(w, "invalid routine payload", http.StatusBadRequest)
		return
	}

	routine, err := handler.service.Create(ctx, userID, req)
	if err != nil {
		log.Tracef("create routine for user %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to create routine")
		return
	}

	pkg.WriteJSON(w, routine, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.update")
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

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var req RoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid routine payload", http.StatusBadRequest)
		return
	}

	routine, err := handler.service.Update(ctx, userID, id, req)
	if err != nil {
		log.Tracef("update routine %d: %s", id, err)
		apperr.WriteHTTP(w, err, "failed to update routine")
		return
	}

	pkg.WriteJSON(w, routine, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.delete")
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
		log.Tracef("delete routine %d: %s", id, err)
		apperr.WriteHTTP(w, err, "failed to delete routine")
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.get")
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

	routine, err := handler.service.Get(ctx, userID, id)
	if err != nil {
		log.Tracef("get routine %d: %s", id, err)
		apperr.WriteHTTP(w, err, "failed to get routine")
		return
	}

	pkg.WriteJSON(w, routine, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	list, err := handler.service.List(ctx, userID)
	if err != nil {
		log.Errorf("list routines of user %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to list routines")
		return
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleSharedPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.sharedPage")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Errorf("handle shared routines page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Errorf("handle shared routines page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	sharedPage, err := handler.service.SharedPage(ctx, userID, page, size)
	if err != nil {
		log.Tracef("get shared routines page %d/%d: %s", page, size, err)
		apperr.WriteHTTP(w, err, "failed to get shared routines")
		return
	}

	pkg.WriteJSON(w, sharedPage, http.StatusOK)
}

func (handler *Handler) HandleCopy(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.copy")
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

	routine, err := handler.service.Copy(ctx, userID, id)
	if err != nil {
		log.Tracef("copy shared routine %d: %s", id, err)
		apperr.WriteHTTP(w, err, "failed to copy routine")
		return
	}

	pkg.WriteJSON(w, routine, http.StatusCreated)
}
