package auth

import "context"

var _ Checker = (*Service)(nil)

type Checker interface {
	Authenticate(ctx context.Context, token string) (int, error)
}
