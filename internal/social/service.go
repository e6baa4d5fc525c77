package social

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/account"
	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/gymstats/sessions"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/units"
)

const (
	notificationsLimit = 50
	DefaultFeedSize    = 20
	MaxFeedSize        = 100
)

var validate = validator.New()

type store interface {
	Follow(ctx context.Context, followerID, targetID int) (FollowStatus, error)
	Unfollow(ctx context.Context, followerID, targetID int) error
	FollowRequests(ctx context.Context, targetID int) ([]FollowRequest, error)
	AcceptRequest(ctx context.Context, targetID, requestID int) error
	RejectRequest(ctx context.Context, targetID, requestID int) error
	Like(ctx context.Context, userID int, session SessionRef) error
	Unlike(ctx context.Context, userID, sessionID int) error
	AddComment(ctx context.Context, c *Comment, session SessionRef) error
	DeleteComment(ctx context.Context, userID, commentID int) error
	Comments(ctx context.Context, sessionID int) ([]Comment, error)
	Notifications(ctx context.Context, userID, limit int) ([]Notification, error)
	UnreadCount(ctx context.Context, userID int) (int, error)
	MarkRead(ctx context.Context, userID int, ids []int) (int64, error)
	Engagement(ctx context.Context, viewerID, sessionID int) (*Engagement, error)
}

type sessionReader interface {
	Get(ctx context.Context, id int) (*sessions.Session, error)
	Feed(ctx context.Context, userID, limit, offset int) ([]sessions.Session, error)
}

type accessChecker interface {
	CanView(ctx context.Context, viewerID, ownerID int) (bool, error)
}

type Service struct {
	store    store
	sessions sessionReader
	access   accessChecker
}

func NewService(store store, sessions sessionReader, access accessChecker) *Service {
	return &Service{
		store:    store,
		sessions: sessions,
		access:   access,
	}
}

func (s *Service) Follow(ctx context.Context, followerID, targetID int) (FollowStatus, error) {
	if followerID == targetID {
		return "", apperr.Validation("you cannot follow yourself")
	}
	return s.store.Follow(ctx, followerID, targetID)
}

func (s *Service) Unfollow(ctx context.Context, followerID, targetID int) error {
	return s.store.Unfollow(ctx, followerID, targetID)
}

func (s *Service) FollowRequests(ctx context.Context, userID int) ([]FollowRequest, error) {
	requests, err := s.store.FollowRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []FollowRequest{}
	}
	return requests, nil
}

func (s *Service) AcceptRequest(ctx context.Context, userID, requestID int) error {
	return s.store.AcceptRequest(ctx, userID, requestID)
}

func (s *Service) RejectRequest(ctx context.Context, userID, requestID int) error {
	return s.store.RejectRequest(ctx, userID, requestID)
}

// visibleSession loads the session and checks viewerID may see its owner's workouts.
func (s *Service) visibleSession(ctx context.Context, viewerID, sessionID int) (SessionRef, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return SessionRef{}, err
	}
	canView, err := s.access.CanView(ctx, viewerID, session.UserID)
	if err != nil {
		return SessionRef{}, err
	}
	if !canView {
		return SessionRef{}, account.ErrPrivateProfile
	}
	return SessionRef{ID: session.ID, OwnerID: session.UserID}, nil
}

func (s *Service) Like(ctx context.Context, userID, sessionID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.like")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session_id", sessionID))

	ref, err := s.visibleSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	return s.store.Like(ctx, userID, ref)
}

func (s *Service) Unlike(ctx context.Context, userID, sessionID int) error {
	return s.store.Unlike(ctx, userID, sessionID)
}

func (s *Service) Comment(ctx context.Context, userID, sessionID int, body string) (_ *Comment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.comment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session_id", sessionID))

	c := &Comment{
		UserID: userID,
		Body:   strings.TrimSpace(body),
	}
	if err := validate.Struct(c); err != nil {
		return nil, apperr.Validation("comment must have between 1 and 500 characters")
	}

	ref, err := s.visibleSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddComment(ctx, c, ref); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) DeleteComment(ctx context.Context, userID, commentID int) error {
	return s.store.DeleteComment(ctx, userID, commentID)
}

func (s *Service) Comments(ctx context.Context, viewerID, sessionID int) ([]Comment, error) {
	if _, err := s.visibleSession(ctx, viewerID, sessionID); err != nil {
		return nil, err
	}
	comments, err := s.store.Comments(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []Comment{}
	}
	return comments, nil
}

func (s *Service) Notifications(ctx context.Context, userID int) (*NotificationsPage, error) {
	items, err := s.store.Notifications(ctx, userID, notificationsLimit)
	if err != nil {
		return nil, err
	}
	unread, err := s.store.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Notification{}
	}
	return &NotificationsPage{Unread: unread, Items: items}, nil
}

func (s *Service) MarkRead(ctx context.Context, userID int, ids []int) (int64, error) {
	return s.store.MarkRead(ctx, userID, ids)
}

// Feed returns one page of the user's and followed users' sessions. Items
// that cannot be enriched are logged and left out.
func (s *Service) Feed(ctx context.Context, userID, page, size int) (_ []FeedItem, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.feed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if page < 1 {
		return nil, apperr.Validation("page must be positive")
	}
	if size < 1 || size > MaxFeedSize {
		return nil, apperr.Validation("size must be between 1 and %d", MaxFeedSize)
	}
	span.SetAttributes(attribute.Int("page", page), attribute.Int("size", size))

	list, err := s.sessions.Feed(ctx, userID, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(list))
	for i := range list {
		session := &list[i]
		engagement, err := s.store.Engagement(ctx, userID, session.ID)
		if err != nil {
			log.Errorf("feed of user %d: skip session %d: %s", userID, session.ID, err)
			continue
		}
		items = append(items, FeedItem{
			Session:       session,
			Engagement:    *engagement,
			DurationLabel: units.FormatHuman(session.Duration),
		})
	}

	return items, nil
}
