package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/liftlog/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkerFake struct {
	tokens map[string]int
	err    error
	calls  int
}

func (c *checkerFake) Authenticate(_ context.Context, token string) (int, error) {
	c.calls++
	if c.err != nil {
		return 0, c.err
	}
	userID, ok := c.tokens[token]
	if !ok {
		return 0, auth.ErrSessionNotFound
	}
	return userID, nil
}

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	testCases := []struct {
		name               string
		path               string
		method             string
		authHeader         string
		checkerErr         error
		expectedStatusCode int
		expectedUserID     int
		expectNextCalled   bool
	}{
		{
			name:               "AllowedPathWithoutToken",
			path:               "/a/login",
			method:             http.MethodPost,
			expectedStatusCode: http.StatusOK,
			expectNextCalled:   true,
		},
		{
			name:               "RootWithoutToken",
			path:               "/",
			method:             http.MethodGet,
			expectedStatusCode: http.StatusOK,
			expectNextCalled:   true,
		},
		{
			name:               "Preflight",
			path:               "/sessions",
			method:             http.MethodOptions,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "MissingToken",
			path:               "/sessions",
			method:             http.MethodPost,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "NotBearer",
			path:               "/sessions",
			method:             http.MethodPost,
			authHeader:         "Basic dXNlcjpwYXNz",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ValidToken",
			path:               "/users/me",
			method:             http.MethodGet,
			authHeader:         "Bearer valid-token",
			expectedStatusCode: http.StatusOK,
			expectedUserID:     42,
			expectNextCalled:   true,
		},
		{
			name:               "RevokedToken",
			path:               "/users/me",
			method:             http.MethodGet,
			authHeader:         "Bearer revoked-token",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "CheckerFailure",
			path:               "/users/me",
			method:             http.MethodGet,
			authHeader:         "Bearer valid-token",
			checkerErr:         errors.New("redis down"),
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checker := &checkerFake{tokens: map[string]int{"valid-token": 42}, err: tc.checkerErr}
			authMiddleware := NewAuthMiddlewareHandler(checker)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			nextCalled := false
			var gotUserID int
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = auth.UserIDFromContext(r.Context())
			})

			rr := httptest.NewRecorder()
			authMiddleware.AuthCheck()(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			require.Equal(t, tc.expectNextCalled, nextCalled)
			assert.Equal(t, tc.expectedUserID, gotUserID)
		})
	}
}
