package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/account"
	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersService interface {
	Register(ctx context.Context, req RegisterRequest) (*account.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID int) (*Profile, error)
	Profile(ctx context.Context, viewerID, userID int) (*Profile, error)
	UpdatePreferences(ctx context.Context, userID int, req PreferencesRequest) (*account.Settings, error)
	Search(ctx context.Context, query string) ([]PublicUser, error)
}

type Handler struct {
	service      usersService
	loginLimiter func(http.Handler) http.Handler
}

// NewHandler creates the users handler. loginLimiter guards the login and
// register routes and may be nil.
func NewHandler(service usersService, loginLimiter func(http.Handler) http.Handler) *Handler {
	if loginLimiter == nil {
		loginLimiter = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{
		service:      service,
		loginLimiter: loginLimiter,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.Handle("/a/register", handler.loginLimiter(http.HandlerFunc(handler.HandleRegister))).Methods("POST", "OPTIONS").Name("register")
	r.Handle("/a/login", handler.loginLimiter(http.HandlerFunc(handler.HandleLogin))).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/a/logout", handler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	r.HandleFunc("/users/me", handler.HandleMe).Methods("GET", "OPTIONS").Name("me")
	r.HandleFunc("/users/me/preferences", handler.HandlePreferences).Methods("PUT", "OPTIONS").Name("preferences")
	r.HandleFunc("/users/search", handler.HandleSearch).Methods("GET", "OPTIONS").Name("search-users")
	r.HandleFunc("/users/{id:[0-9]+}", handler.HandleProfile).Methods("GET", "OPTIONS").Name("profile")
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "invalid registration payload", http.StatusBadRequest)
		return
	}

	user, err := handler.service.Register(ctx, req)
	if err != nil {
		log.Tracef("register [%s]: %s", req.Username, err)
		apperr.WriteHTTP(w, err, "registration failed")
		return
	}

	pkg.WriteJSON(w, user, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "error, login params not provided", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Login(ctx, req)
	if errors.Is(err, ErrInvalidCredentials) {
		log.Tracef("failed login attempt for [%s]", req.Email)
		http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("login [%s]: %s", req.Email, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	token := auth.BearerToken(r)
	if token == "" {
		http.Error(w, "error, no token", http.StatusUnauthorized)
		return
	}

	if err := handler.service.Logout(ctx, token); err != nil {
		log.Tracef("logout: %s", err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.me")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	profile, err := handler.service.Me(ctx, userID)
	if err != nil {
		log.Errorf("get profile of user %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to get profile")
		return
	}

	pkg.WriteJSON(w, profile, http.StatusOK)
}

func (handler *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.profile")
	defer span.End()

	viewerID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	profile, err := handler.service.Profile(ctx, viewerID, id)
	if err != nil {
		log.Tracef("get profile %d for %d: %s", id, viewerID, err)
		apperr.WriteHTTP(w, err, "failed to get profile")
		return
	}

	pkg.WriteJSON(w, profile, http.StatusOK)
}

func (handler *Handler) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.preferences")
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

	var req PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid preferences payload", http.StatusBadRequest)
		return
	}

	settings, err := handler.service.UpdatePreferences(ctx, userID, req)
	if err != nil {
		log.Tracef("update preferences of user %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to update preferences")
		return
	}

	pkg.WriteJSON(w, settings, http.StatusOK)
}

func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.search")
	defer span.End()

	if _, ok := auth.UserIDFromContext(ctx); !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	found, err := handler.service.Search(ctx, strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		log.Errorf("search users: %s", err)
		apperr.WriteHTTP(w, err, "failed to search users")
		return
	}

	pkg.WriteJSON(w, found, http.StatusOK)
}
