package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/account"
	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/gymstats/sessions"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

var (
	ErrRequestNotFound  = apperr.NotFound("follow request not found")
	ErrNotRequestTarget = apperr.Permission("this follow request was sent to another user")
	ErrCommentNotFound  = apperr.NotFound("comment not found")
	ErrNotCommentAuthor = apperr.Permission("only the author can delete a comment")
	ErrAlreadyFollowing = apperr.Conflict("already following")
	ErrRequestPending   = apperr.Conflict("follow request already pending")
)

// Repo writes every social change together with its notification in one
// transaction.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func notify(ctx context.Context, q db.Querier, n *Notification) error {
	err := q.QueryRow(
		ctx,
		`
			INSERT INTO notification (user_id, message, type, related_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at;`,
		n.UserID, n.Message, string(n.Type), n.RelatedID,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification [%s]: %w", n.Type, err)
	}
	return nil
}

func username(ctx context.Context, q db.Querier, userID int) (string, error) {
	var name string
	err := q.QueryRow(ctx, `SELECT username FROM users WHERE id = $1`, userID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", account.ErrUserNotFound
	}
	return name, err
}

// Follow follows public accounts directly and files a follow request for
// private ones. Repeating either gives a ConflictError.
func (r *Repo) Follow(ctx context.Context, followerID, targetID int) (_ FollowStatus, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.follow")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("follower_id", followerID), attribute.Int("target_id", targetID))

	var status FollowStatus
	err = db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var (
			privacy      string
			followerName string
		)
		err := tx.QueryRow(
			ctx,
			`
				SELECT t.privacy_setting, f.username
				FROM users t, users f
				WHERE t.id = $1 AND f.id = $2;`,
			targetID, followerID,
		).Scan(&privacy, &followerName)
		if errors.Is(err, pgx.ErrNoRows) {
			return account.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if account.Privacy(privacy) == account.Public {
			status = StatusFollowing
			tag, err := tx.Exec(
				ctx,
				`INSERT INTO follow (follower_id, followed_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				followerID, targetID,
			)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return ErrAlreadyFollowing
			}
			return notify(ctx, tx, &Notification{
				UserID:    targetID,
				Message:   fmt.Sprintf("%s started following you", followerName),
				Type:      NotifyFollow,
				RelatedID: &followerID,
			})
		}

		var following bool
		if err := tx.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM follow WHERE follower_id = $1 AND followed_id = $2)`,
			followerID, targetID,
		).Scan(&following); err != nil {
			return err
		}
		if following {
			return ErrAlreadyFollowing
		}

		status = StatusRequested
		var requestID int
		err = tx.QueryRow(
			ctx,
			`
				INSERT INTO follow_request (requester_id, target_id) VALUES ($1, $2)
				ON CONFLICT (requester_id, target_id) DO NOTHING
				RETURNING id;`,
			followerID, targetID,
		).Scan(&requestID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRequestPending
		}
		if err != nil {
			return err
		}
		return notify(ctx, tx, &Notification{
			UserID:    targetID,
			Message:   fmt.Sprintf("%s wants to follow you", followerName),
			Type:      NotifyFollowRequest,
			RelatedID: &requestID,
		})
	})
	if err != nil {
		return "", err
	}

	return status, nil
}

// Unfollow removes the follow edge and any pending request.
func (r *Repo) Unfollow(ctx context.Context, followerID, targetID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.unfollow")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`DELETE FROM follow WHERE follower_id = $1 AND followed_id = $2`,
			followerID, targetID,
		); err != nil {
			return err
		}
		_, err := tx.Exec(
			ctx,
			`DELETE FROM follow_request WHERE requester_id = $1 AND target_id = $2`,
			followerID, targetID,
		)
		return err
	})
}

func (r *Repo) FollowRequests(ctx context.Context, targetID int) (_ []FollowRequest, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.followRequests")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT fr.id, fr.requester_id, u.username, fr.target_id, fr.created_at
			FROM follow_request fr
			JOIN users u ON u.id = fr.requester_id
			WHERE fr.target_id = $1
			ORDER BY fr.created_at DESC, fr.id DESC;`,
		targetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []FollowRequest
	for rows.Next() {
		var fr FollowRequest
		if err := rows.Scan(&fr.ID, &fr.RequesterID, &fr.RequesterUsername, &fr.TargetID, &fr.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		requests = append(requests, fr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// AcceptRequest turns the request into a follow edge and tells the requester.
func (r *Repo) AcceptRequest(ctx context.Context, targetID, requestID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.acceptRequest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("request_id", requestID))

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		requesterID, err := takeRequest(ctx, tx, targetID, requestID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO follow (follower_id, followed_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			requesterID, targetID,
		); err != nil {
			return err
		}

		targetName, err := username(ctx, tx, targetID)
		if err != nil {
			return err
		}
		return notify(ctx, tx, &Notification{
			UserID:    requesterID,
			Message:   fmt.Sprintf("%s accepted your follow request", targetName),
			Type:      NotifyFollowAccepted,
			RelatedID: &targetID,
		})
	})
}

func (r *Repo) RejectRequest(ctx context.Context, targetID, requestID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.rejectRequest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = takeRequest(ctx, r.db, targetID, requestID)
	return err
}

func takeRequest(ctx context.Context, q db.Querier, targetID, requestID int) (int, error) {
	var requesterID int
	err := q.QueryRow(
		ctx,
		`DELETE FROM follow_request WHERE id = $1 AND target_id = $2 RETURNING requester_id`,
		requestID, targetID,
	).Scan(&requesterID)
	if !errors.Is(err, pgx.ErrNoRows) {
		return requesterID, err
	}

	var exists bool
	if err := q.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM follow_request WHERE id = $1)`,
		requestID,
	).Scan(&exists); err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrNotRequestTarget
	}
	return 0, ErrRequestNotFound
}

// Like is idempotent; only the first like notifies the owner.
func (r *Repo) Like(ctx context.Context, userID int, session SessionRef) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.like")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session_id", session.ID))

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(
			ctx,
			`INSERT INTO workout_like (session_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			session.ID, userID,
		)
		if pkg.IsForeignKeyViolationError(err) {
			return sessions.ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 || session.OwnerID == userID {
			return nil
		}

		likerName, err := username(ctx, tx, userID)
		if err != nil {
			return err
		}
		return notify(ctx, tx, &Notification{
			UserID:    session.OwnerID,
			Message:   fmt.Sprintf("%s liked your workout", likerName),
			Type:      NotifyLike,
			RelatedID: &session.ID,
		})
	})
}

func (r *Repo) Unlike(ctx context.Context, userID, sessionID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.unlike")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `DELETE FROM workout_like WHERE session_id = $1 AND user_id = $2`, sessionID, userID)
	return err
}

func (r *Repo) AddComment(ctx context.Context, c *Comment, session SessionRef) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.addComment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session_id", session.ID))

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(
			ctx,
			`
				INSERT INTO workout_comment (session_id, user_id, body)
				VALUES ($1, $2, $3)
				RETURNING id, created_at;`,
			session.ID, c.UserID, c.Body,
		).Scan(&c.ID, &c.CreatedAt)
		if pkg.IsForeignKeyViolationError(err) {
			return sessions.ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		c.SessionID = session.ID

		c.Username, err = username(ctx, tx, c.UserID)
		if err != nil {
			return err
		}
		if session.OwnerID == c.UserID {
			return nil
		}
		return notify(ctx, tx, &Notification{
			UserID:    session.OwnerID,
			Message:   fmt.Sprintf("%s commented on your workout", c.Username),
			Type:      NotifyComment,
			RelatedID: &session.ID,
		})
	})
}

func (r *Repo) DeleteComment(ctx context.Context, userID, commentID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.deleteComment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_comment WHERE id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM workout_comment WHERE id = $1)`,
		commentID,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrNotCommentAuthor
	}
	return ErrCommentNotFound
}

func (r *Repo) Comments(ctx context.Context, sessionID int) (_ []Comment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.comments")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT c.id, c.session_id, c.user_id, u.username, c.body, c.created_at
			FROM workout_comment c
			JOIN users u ON u.id = c.user_id
			WHERE c.session_id = $1
			ORDER BY c.created_at, c.id;`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.SessionID, &c.UserID, &c.Username, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *Repo) Notifications(ctx context.Context, userID, limit int) (_ []Notification, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.notifications")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, message, type, related_id, read, created_at
			FROM notification
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Notification
	for rows.Next() {
		var (
			n   Notification
			typ string
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &typ, &n.RelatedID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		n.Type = NotificationType(typ)
		list = append(list, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repo) UnreadCount(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.unreadCount")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(ctx, `SELECT count(*) FROM notification WHERE user_id = $1 AND NOT read`, userID).Scan(&count)
	return count, err
}

// MarkRead marks the given notifications read, or all of them when ids is empty.
func (r *Repo) MarkRead(ctx context.Context, userID int, ids []int) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.markRead")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ids == nil {
		// a nil slice is sent as NULL
		ids = []int{}
	}
	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE notification SET read = TRUE
			WHERE user_id = $1 AND NOT read
				AND (cardinality($2::int[]) = 0 OR id = ANY($2::int[]));`,
		userID, ids,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) Engagement(ctx context.Context, viewerID, sessionID int) (_ *Engagement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.engagement")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var e Engagement
	err = r.db.QueryRow(
		ctx,
		`
			SELECT u.username,
				(SELECT count(*) FROM workout_like l WHERE l.session_id = s.id),
				(SELECT count(*) FROM workout_comment c WHERE c.session_id = s.id),
				EXISTS (SELECT 1 FROM workout_like l WHERE l.session_id = s.id AND l.user_id = $1)
			FROM workout_session s
			JOIN users u ON u.id = s.user_id
			WHERE s.id = $2;`,
		viewerID, sessionID,
	).Scan(&e.Username, &e.Likes, &e.Comments, &e.LikedByMe)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sessions.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}
