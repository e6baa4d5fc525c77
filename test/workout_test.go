//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/liftlog/internal/gymstats/sessions"
	"github.com/2beens/liftlog/internal/measurements"
	"github.com/2beens/liftlog/internal/routines"
	"github.com/2beens/liftlog/internal/social"
)

func ptr[T any](v T) *T {
	return &v
}

func (s *IntegrationTestSuite) benchWorkout(ctx context.Context) sessions.IngestRequest {
	return sessions.IngestRequest{
		Title:     "Push day",
		Rating:    4,
		Duration:  3600,
		ExpGained: 120,
		Exercises: []sessions.ExerciseEntry{
			{
				ID: s.exerciseID(ctx, "Bench Press"),
				Sets: []sessions.SetCandidate{
					{Completed: true, Weight: ptr(60.0), Reps: ptr(10)},
					{Completed: true, Weight: ptr(70.0), Reps: ptr(8)},
					{Completed: false, Weight: ptr(80.0), Reps: ptr(3)},
				},
			},
			{
				ID: s.exerciseID(ctx, "Pull Up"),
				Sets: []sessions.SetCandidate{
					{Completed: true, Reps: ptr(8)},
				},
			},
		},
	}
}

func (s *IntegrationTestSuite) TestIngestThenDelete_RestoresExp() {
	ctx := context.Background()
	u := s.newUser(ctx, 80, "public")
	before := s.me(ctx, u)

	var result sessions.IngestResult
	status, body := s.doRequest(ctx, http.MethodPost, "/sessions", u.Token, s.benchWorkout(ctx), &result)
	s.Require().Equal(http.StatusCreated, status, body)
	s.True(result.Success)
	s.Positive(result.SessionID)
	s.Positive(result.ExpGained)

	after := s.me(ctx, u)
	s.Equal(before.Exp+result.ExpGained, after.Exp)
	s.Equal(1, after.Streak)

	var (
		setsStored int
		volume     float64
	)
	err := s.dbPool.QueryRow(ctx,
		`SELECT count(*), COALESCE(sum(volume), 0) FROM workout_set WHERE session_id = $1`,
		result.SessionID,
	).Scan(&setsStored, &volume)
	s.Require().NoError(err)
	// only completed sets are persisted; pull ups carry the 80kg bodyweight
	s.Equal(3, setsStored)
	s.InDelta(60*10+70*8+80*8, volume, 1e-6)

	// someone else cannot delete it
	stranger := s.newUser(ctx, 60, "public")
	status, _ = s.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/sessions/%d", result.SessionID), stranger.Token, nil, nil)
	s.Equal(http.StatusForbidden, status)

	status, body = s.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/sessions/%d", result.SessionID), u.Token, nil, nil)
	s.Require().Equal(http.StatusOK, status, body)

	reverted := s.me(ctx, u)
	s.Equal(before.Exp, reverted.Exp)
	s.Equal(before.Level, reverted.Level)

	var setsLeft int
	err = s.dbPool.QueryRow(ctx, `SELECT count(*) FROM workout_set WHERE session_id = $1`, result.SessionID).Scan(&setsLeft)
	s.Require().NoError(err)
	s.Zero(setsLeft)

	status, _ = s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d", result.SessionID), u.Token, nil, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestIngest_SkipsUnknownExercises() {
	ctx := context.Background()
	u := s.newUser(ctx, 80, "public")

	req := s.benchWorkout(ctx)
	req.Exercises = append(req.Exercises, sessions.ExerciseEntry{
		ID:   999999,
		Sets: []sessions.SetCandidate{{Completed: true, Weight: ptr(10.0), Reps: ptr(10)}},
	})

	var result sessions.IngestResult
	status, body := s.doRequest(ctx, http.MethodPost, "/sessions", u.Token, req, &result)
	s.Require().Equal(http.StatusCreated, status, body)

	var setsStored int
	err := s.dbPool.QueryRow(ctx, `SELECT count(*) FROM workout_set WHERE session_id = $1`, result.SessionID).Scan(&setsStored)
	s.Require().NoError(err)
	s.Equal(3, setsStored)
}

func (s *IntegrationTestSuite) TestIngest_InvalidPayloadStoresNothing() {
	ctx := context.Background()
	u := s.newUser(ctx, 80, "public")
	before := s.me(ctx, u)

	req := s.benchWorkout(ctx)
	req.Rating = 9
	status, _ := s.doRequest(ctx, http.MethodPost, "/sessions", u.Token, req, nil)
	s.Equal(http.StatusBadRequest, status)

	var sessionsCount int
	err := s.dbPool.QueryRow(ctx, `SELECT count(*) FROM workout_session WHERE user_id = $1`, u.ID).Scan(&sessionsCount)
	s.Require().NoError(err)
	s.Zero(sessionsCount)
	s.Equal(before.Exp, s.me(ctx, u).Exp)
}

func (s *IntegrationTestSuite) TestMeasurements_LastWeightIsKept() {
	ctx := context.Background()
	u := s.newUser(ctx, 82.5, "public")

	var weights []measurements.Measurement
	status, body := s.doRequest(ctx, http.MethodGet, "/measurements?type=weight", u.Token, nil, &weights)
	s.Require().Equal(http.StatusOK, status, body)
	s.Require().Len(weights, 1)
	s.InDelta(82.5, weights[0].Value, 1e-6)

	status, _ = s.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/measurements/%d", weights[0].ID), u.Token, nil, nil)
	s.Equal(http.StatusConflict, status)

	var added measurements.Measurement
	status, body = s.doRequest(ctx, http.MethodPost, "/measurements", u.Token, measurements.LogRequest{
		Type:  "weight",
		Value: 81,
	}, &added)
	s.Require().Equal(http.StatusCreated, status, body)

	status, _ = s.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/measurements/%d", weights[0].ID), u.Token, nil, nil)
	s.Equal(http.StatusOK, status)

	status, _ = s.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/measurements/%d", added.ID), u.Token, nil, nil)
	s.Equal(http.StatusConflict, status)

	// out of range values are refused
	status, _ = s.doRequest(ctx, http.MethodPost, "/measurements", u.Token, measurements.LogRequest{
		Type:  "weight",
		Value: 900,
	}, nil)
	s.Equal(http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) sharedSnapshots(ctx context.Context, routineID int) int {
	var n int
	err := s.dbPool.QueryRow(ctx, `SELECT count(*) FROM shared_routine WHERE routine_id = $1`, routineID).Scan(&n)
	s.Require().NoError(err)
	return n
}

func (s *IntegrationTestSuite) TestRoutines_PublicRoutineIsShared() {
	ctx := context.Background()
	owner := s.newUser(ctx, 75, "public")
	copier := s.newUser(ctx, 65, "public")

	req := routines.RoutineRequest{
		Name: "Upper A",
		Exercises: []sessions.TemplateExercise{
			{
				ExerciseID: s.exerciseID(ctx, "Bench Press"),
				Sets:       []sessions.SetCandidate{{Weight: ptr(60.0), Reps: ptr(8)}},
			},
		},
		IsPublic: true,
	}

	var routine routines.Routine
	status, body := s.doRequest(ctx, http.MethodPost, "/routines", owner.Token, req, &routine)
	s.Require().Equal(http.StatusCreated, status, body)
	s.Equal(1, s.sharedSnapshots(ctx, routine.ID))

	var sharedID int
	err := s.dbPool.QueryRow(ctx, `SELECT id FROM shared_routine WHERE routine_id = $1`, routine.ID).Scan(&sharedID)
	s.Require().NoError(err)

	var copied routines.Routine
	status, body = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/shared-routines/%d/copy", sharedID), copier.Token, nil, &copied)
	s.Require().Equal(http.StatusCreated, status, body)
	s.False(copied.IsPublic)
	s.Equal(copier.ID, copied.UserID)
	s.Zero(s.sharedSnapshots(ctx, copied.ID))

	var copyCount int
	err = s.dbPool.QueryRow(ctx, `SELECT copy_count FROM shared_routine WHERE id = $1`, sharedID).Scan(&copyCount)
	s.Require().NoError(err)
	s.Equal(1, copyCount)

	// making it private keeps the snapshot but hides it
	req.IsPublic = false
	status, body = s.doRequest(ctx, http.MethodPut, fmt.Sprintf("/routines/%d", routine.ID), owner.Token, req, nil)
	s.Require().Equal(http.StatusOK, status, body)
	s.Equal(1, s.sharedSnapshots(ctx, routine.ID))

	status, _ = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/shared-routines/%d/copy", sharedID), copier.Token, nil, nil)
	s.Equal(http.StatusNotFound, status)

	// others cannot edit it
	status, _ = s.doRequest(ctx, http.MethodPut, fmt.Sprintf("/routines/%d", routine.ID), copier.Token, req, nil)
	s.Equal(http.StatusForbidden, status)

	// public again: still exactly one snapshot
	req.IsPublic = true
	status, body = s.doRequest(ctx, http.MethodPut, fmt.Sprintf("/routines/%d", routine.ID), owner.Token, req, nil)
	s.Require().Equal(http.StatusOK, status, body)
	s.Equal(1, s.sharedSnapshots(ctx, routine.ID))
}

func (s *IntegrationTestSuite) TestSocial_FeedAndLikes() {
	ctx := context.Background()
	lifter := s.newUser(ctx, 90, "private")
	fan := s.newUser(ctx, 70, "public")

	var result sessions.IngestResult
	status, body := s.doRequest(ctx, http.MethodPost, "/sessions", lifter.Token, s.benchWorkout(ctx), &result)
	s.Require().Equal(http.StatusCreated, status, body)

	// private account: liking needs an accepted follow first
	status, _ = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/sessions/%d/like", result.SessionID), fan.Token, nil, nil)
	s.Equal(http.StatusForbidden, status)

	var follow map[string]social.FollowStatus
	status, body = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/users/%d/follow", lifter.ID), fan.Token, nil, &follow)
	s.Require().Equal(http.StatusOK, status, body)
	s.Equal(social.StatusRequested, follow["status"])

	status, _ = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/users/%d/follow", lifter.ID), fan.Token, nil, nil)
	s.Equal(http.StatusConflict, status)

	var requests []social.FollowRequest
	status, body = s.doRequest(ctx, http.MethodGet, "/follow-requests", lifter.Token, nil, &requests)
	s.Require().Equal(http.StatusOK, status, body)
	s.Require().Len(requests, 1)

	status, body = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/follow-requests/%d/accept", requests[0].ID), lifter.Token, nil, nil)
	s.Require().Equal(http.StatusOK, status, body)

	status, _ = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/users/%d/follow", lifter.ID), fan.Token, nil, nil)
	s.Equal(http.StatusConflict, status)

	for range 2 {
		status, body = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/sessions/%d/like", result.SessionID), fan.Token, nil, nil)
		s.Require().Equal(http.StatusOK, status, body)
	}

	var feed []social.FeedItem
	status, body = s.doRequest(ctx, http.MethodGet, "/feed", fan.Token, nil, &feed)
	s.Require().Equal(http.StatusOK, status, body)
	s.Require().Len(feed, 1)
	s.Equal(result.SessionID, feed[0].ID)
	s.Equal(1, feed[0].Likes)
	s.True(feed[0].LikedByMe)

	var notifications social.NotificationsPage
	status, body = s.doRequest(ctx, http.MethodGet, "/notifications", lifter.Token, nil, &notifications)
	s.Require().Equal(http.StatusOK, status, body)
	// follow request + like
	s.Equal(2, notifications.Unread)
}
