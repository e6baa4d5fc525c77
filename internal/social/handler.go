package social

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

//go:generate mockgen -source=$GOFILE -destination=social_mocks_test.go -package=social_test

type socialService interface {
	Follow(ctx context.Context, followerID, targetID int) (FollowStatus, error)
	Unfollow(ctx context.Context, followerID, targetID int) error
	FollowRequests(ctx context.Context, userID int) ([]FollowRequest, error)
	AcceptRequest(ctx context.Context, userID, requestID int) error
	RejectRequest(ctx context.Context, userID, requestID int) error
	Like(ctx context.Context, userID, sessionID int) error
	Unlike(ctx context.Context, userID, sessionID int) error
	Comment(ctx context.Context, userID, sessionID int, body string) (*Comment, error)
	DeleteComment(ctx context.Context, userID, commentID int) error
	Comments(ctx context.Context, viewerID, sessionID int) ([]Comment, error)
	Notifications(ctx context.Context, userID int) (*NotificationsPage, error)
	MarkRead(ctx context.Context, userID int, ids []int) (int64, error)
	Feed(ctx context.Context, userID, page, size int) ([]FeedItem, error)
}

type Handler struct {
	service socialService
}

func NewHandler(service socialService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/users/{id:[0-9]+}/follow", handler.HandleFollow).Methods("POST", "OPTIONS").Name("follow")
	r.HandleFunc("/users/{id:[0-9]+}/follow", handler.HandleUnfollow).Methods("DELETE", "OPTIONS").Name("unfollow")
	r.HandleFunc("/follow-requests", handler.HandleFollowRequests).Methods("GET", "OPTIONS").Name("follow-requests")
	r.HandleFunc("/follow-requests/{id:[0-9]+}/accept", handler.HandleAccept).Methods("POST", "OPTIONS").Name("accept-follow")
	r.HandleFunc("/follow-requests/{id:[0-9]+}/reject", handler.HandleReject).Methods("POST", "OPTIONS").Name("reject-follow")
	r.HandleFunc("/sessions/{id:[0-9]+}/like", handler.HandleLike).Methods("POST", "OPTIONS").Name("like")
	r.HandleFunc("/sessions/{id:[0-9]+}/like", handler.HandleUnlike).Methods("DELETE", "OPTIONS").Name("unlike")
	r.HandleFunc("/sessions/{id:[0-9]+}/comments", handler.HandleComments).Methods("GET", "OPTIONS").Name("comments")
	r.HandleFunc("/sessions/{id:[0-9]+}/comments", handler.HandleComment).Methods("POST", "OPTIONS").Name("new-comment")
	r.HandleFunc("/comments/{id:[0-9]+}", handler.HandleDeleteComment).Methods("DELETE", "OPTIONS").Name("delete-comment")
	r.HandleFunc("/notifications", handler.HandleNotifications).Methods("GET", "OPTIONS").Name("notifications")
	r.HandleFunc("/notifications/read", handler.HandleMarkRead).Methods("POST", "OPTIONS").Name("mark-read")
	r.HandleFunc("/feed", handler.HandleFeed).Methods("GET", "OPTIONS").Name("feed")
}

// userAndID resolves the caller and the {id} route param. On failure the
// response is already written.
func userAndID(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, 0, false
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return 0, 0, false
	}
	return userID, id, true
}

func (handler *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.follow")
	defer span.End()

	userID, targetID, ok := userAndID(w, r)
	if !ok {
		return
	}

	status, err := handler.service.Follow(ctx, userID, targetID)
	if err != nil {
		log.Tracef("user %d follow %d: %s", userID, targetID, err)
		apperr.WriteHTTP(w, err, "failed to follow")
		return
	}

	pkg.WriteJSON(w, map[string]FollowStatus{"status": status}, http.StatusOK)
}

func (handler *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.unfollow")
	defer span.End()

	userID, targetID, ok := userAndID(w, r)
	if !ok {
		return
	}

	if err := handler.service.Unfollow(ctx, userID, targetID); err != nil {
		log.Errorf("user %d unfollow %d: %s", userID, targetID, err)
		apperr.WriteHTTP(w, err, "failed to unfollow")
		return
	}

	pkg.WriteTextResponseOK(w, "unfollowed")
}

func (handler *Handler) HandleFollowRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.followRequests")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	requests, err := handler.service.FollowRequests(ctx, userID)
	if err != nil {
		log.Errorf("list follow requests of %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to list follow requests")
		return
	}

	pkg.WriteJSON(w, requests, http.StatusOK)
}

func (handler *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.accept")
	defer span.End()

	userID, requestID, ok := userAndID(w, r)
	if !ok {
		return
	}

	if err := handler.service.AcceptRequest(ctx, userID, requestID); err != nil {
		log.Tracef("accept follow request %d: %s", requestID, err)
		apperr.WriteHTTP(w, err, "failed to accept follow request")
		return
	}

	pkg.WriteTextResponseOK(w, "accepted")
}

func (handler *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.reject")
	defer span.End()

	userID, requestID, ok := userAndID(w, r)
	if !ok {
		return
	}

	if err := handler.service.RejectRequest(ctx, userID, requestID); err != nil {
		log.Tracef("reject follow request %d: %s", requestID, err)
		apperr.WriteHTTP(w, err, "failed to reject follow request")
		return
	}

	pkg.WriteTextResponseOK(w, "rejected")
}

func (handler *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.like")
	defer span.End()

	userID, sessionID, ok := userAndID(w, r)
	if !ok {
		return
	}

	if err := handler.service.Like(ctx, userID, sessionID); err != nil {
		log.Tracef("user %d like session %d: %s", userID, sessionID, err)
		apperr.WriteHTTP(w, err, "failed to like")
		return
	}

	pkg.WriteTextResponseOK(w, "liked")
}

func (handler *Handler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.unlike")
	defer span.End()

	userID, sessionID, ok := userAndID(w, r)
	if !ok {
		return
	}

	if err := handler.service.Unlike(ctx, userID, sessionID); err != nil {
		log.Errorf("user %d unlike session %d: %s", userID, sessionID, err)
		apperr.WriteHTTP(w, err, "failed to unlike")
		return
	}

	pkg.WriteTextResponseOK(w, "unliked")
}

func (handler *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.comment")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, sessionID, ok := userAndID(w, r)
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid comment payload", http.StatusBadRequest)
		return
	}

	comment, err := handler.service.Comment(ctx, userID, sessionID, req.Body)
	if err != nil {
		log.Tracef("user %d comment on session %d: %s", userID, sessionID, err)
		apperr.WriteHTTP(w, err, "failed to add comment")
		return
	}

	pkg.WriteJSON(w, comment, http.StatusCreated)
}

func (handler *Handler) HandleComments(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.comments")
	defer span.End()

	userID, sessionID, ok := userAndID(w, r)
	if !ok {
		return
	}

	comments, err := handler.service.Comments(ctx, userID, sessionID)
	if err != nil {
		log.Tracef("list comments of session %d: %s", sessionID, err)
		apperr.WriteHTTP(w, err, "failed to list comments")
		return
	}

	pkg.WriteJSON(w, comments, http.StatusOK)
}

func (handler *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.deleteComment")
	defer span.End()

	userID, commentID, ok := userAndID(w, r)
	if !ok {
		return
	}

	if err := handler.service.DeleteComment(ctx, userID, commentID); err != nil {
		log.Tracef("user %d delete comment %d: %s", userID, commentID, err)
		apperr.WriteHTTP(w, err, "failed to delete comment")
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}

func (handler *Handler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.notifications")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	page, err := handler.service.Notifications(ctx, userID)
	if err != nil {
		log.Errorf("list notifications of %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to list notifications")
		return
	}

	pkg.WriteJSON(w, page, http.StatusOK)
}

func (handler *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.markRead")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	// an empty body marks everything read
	var req struct {
		IDs []int `json:"ids"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid ids payload", http.StatusBadRequest)
			return
		}
	}

	marked, err := handler.service.MarkRead(ctx, userID, req.IDs)
	if err != nil {
		log.Errorf("mark notifications read for %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to mark notifications read")
		return
	}

	pkg.WriteJSON(w, map[string]int64{"marked": marked}, http.StatusOK)
}

func (handler *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.feed")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	page, size := 1, DefaultFeedSize
	var err error
	if p := r.URL.Query().Get("page"); p != "" {
		if page, err = strconv.Atoi(p); err != nil {
			http.Error(w, "error, page NaN", http.StatusBadRequest)
			return
		}
	}
	if s := r.URL.Query().Get("size"); s != "" {
		if size, err = strconv.Atoi(s); err != nil {
			http.Error(w, "error, size NaN", http.StatusBadRequest)
			return
		}
	}

	items, err := handler.service.Feed(ctx, userID, page, size)
	if err != nil {
		log.Errorf("feed of user %d: %s", userID, err)
		apperr.WriteHTTP(w, err, "failed to get feed")
		return
	}

	pkg.WriteJSON(w, items, http.StatusOK)
}
