//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/liftlog/internal/users"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	ID       int
	Username string
	Email    string
	Password string
	Token    string
}

// doRequest sends body as JSON (when not nil) and decodes a JSON response
// into out (when not nil). It returns the status code and the raw body.
func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	method, path, token string,
	body any,
	out any,
) (int, string) {
	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	if out != nil && resp.StatusCode < 300 {
		require.NoError(s.T(), json.Unmarshal(respBytes, out), string(respBytes))
	}

	return resp.StatusCode, string(respBytes)
}

// newUser registers a fresh user weighing weightKg and logs them in.
func (s *IntegrationTestSuite) newUser(ctx context.Context, weightKg float64, privacy string) testUser {
	u := testUser{
		Username: fmt.Sprintf("%s%d", gofakeit.LetterN(8), gofakeit.Number(1000, 9999)),
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}

	var registered struct {
		ID int `json:"id"`
	}
	status, body := s.doRequest(ctx, http.MethodPost, "/a/register", "", users.RegisterRequest{
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Privacy:   privacy,
		Weight:    weightKg,
	}, &registered)
	require.Equal(s.T(), http.StatusCreated, status, body)
	u.ID = registered.ID

	var login users.LoginResult
	status, body = s.doRequest(ctx, http.MethodPost, "/a/login", "", users.LoginRequest{
		Email:    u.Email,
		Password: u.Password,
	}, &login)
	require.Equal(s.T(), http.StatusOK, status, body)
	require.NotEmpty(s.T(), login.Token)
	u.Token = login.Token

	return u
}

type meResponse struct {
	ID     int    `json:"id"`
	Exp    int    `json:"exp"`
	Level  int    `json:"level"`
	Streak int    `json:"streak"`
	Badge  string `json:"badge"`
}

func (s *IntegrationTestSuite) me(ctx context.Context, u testUser) meResponse {
	var me meResponse
	status, body := s.doRequest(ctx, http.MethodGet, "/users/me", u.Token, nil, &me)
	require.Equal(s.T(), http.StatusOK, status, body)
	return me
}

func (s *IntegrationTestSuite) exerciseID(ctx context.Context, name string) int {
	var id int
	err := s.dbPool.QueryRow(ctx, `SELECT id FROM exercise WHERE name = $1 AND NOT user_created`, name).Scan(&id)
	require.NoError(s.T(), err)
	return id
}
