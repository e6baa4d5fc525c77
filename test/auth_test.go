//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/2beens/liftlog/internal/users"
)

func (s *IntegrationTestSuite) TestLoginLogout() {
	ctx := context.Background()
	u := s.newUser(ctx, 80, "public")

	me := s.me(ctx, u)
	s.Equal(u.ID, me.ID)
	s.Equal("Beginner", me.Badge)

	status, _ := s.doRequest(ctx, http.MethodPost, "/a/login", "", users.LoginRequest{
		Email:    u.Email,
		Password: u.Password + "x",
	}, nil)
	s.Equal(http.StatusUnauthorized, status)

	status, _ = s.doRequest(ctx, http.MethodPost, "/a/logout", u.Token, nil, nil)
	s.Equal(http.StatusOK, status)

	// revoked token
	status, _ = s.doRequest(ctx, http.MethodGet, "/users/me", u.Token, nil, nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	u := s.newUser(ctx, 70, "public")

	status, _ := s.doRequest(ctx, http.MethodPost, "/a/register", "", users.RegisterRequest{
		Username: "other" + u.Username,
		Email:    u.Email,
		Password: "long-enough-pass",
		Weight:   70,
	}, nil)
	s.Equal(http.StatusConflict, status)
}
