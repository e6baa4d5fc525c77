// Package social holds follows, likes, comments, notifications and the feed.
package social

import (
	"time"

	"github.com/2beens/liftlog/internal/gymstats/sessions"
)

type FollowStatus string

const (
	StatusFollowing FollowStatus = "following"
	StatusRequested FollowStatus = "requested"
)

type NotificationType string

const (
	NotifyFollow         NotificationType = "follow"
	NotifyFollowRequest  NotificationType = "follow_request"
	NotifyFollowAccepted NotificationType = "follow_accepted"
	NotifyLike           NotificationType = "like"
	NotifyComment        NotificationType = "comment"
)

type FollowRequest struct {
	ID                int       `json:"id"`
	RequesterID       int       `json:"requester_id"`
	RequesterUsername string    `json:"requester_username"`
	TargetID          int       `json:"target_id"`
	CreatedAt         time.Time `json:"created_at"`
}

type Comment struct {
	ID        int       `json:"id"`
	SessionID int       `json:"session_id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Body      string    `json:"body" validate:"required,max=500"`
	CreatedAt time.Time `json:"created_at"`
}

type Notification struct {
	ID        int              `json:"id"`
	UserID    int              `json:"user_id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	RelatedID *int             `json:"related_id,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

type NotificationsPage struct {
	Unread int            `json:"unread"`
	Items  []Notification `json:"items"`
}

// Engagement is what the feed shows next to a session.
type Engagement struct {
	Username  string `json:"username"`
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
	LikedByMe bool   `json:"liked_by_me"`
}

type FeedItem struct {
	*sessions.Session
	Engagement
	DurationLabel string `json:"duration_label"`
}

// SessionRef identifies a session and its owner.
type SessionRef struct {
	ID      int
	OwnerID int
}
