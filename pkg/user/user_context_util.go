package user

import (
	"context"
	"fmt"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

// ErrNoUser is returned for guest requests reaching an operation that needs an owner.
var ErrNoUser = fmt.Errorf("user not found in context: %w", apperrors.ErrUnauthorized)

// CurrentId retrieves the current user's ID from the context. Returns ErrNoUser if ID not present in context.
func CurrentId(ctx context.Context) (int, error) {
	user, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("user not found in context")
		return 0, ErrNoUser
	}
	return user.Id, nil
}

func CurrentUser(ctx context.Context) (User, error) {
	user, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("user not found in context")
		return User{}, ErrNoUser
	}
	return user, nil
}

// IsGuest reports whether the request carries no identity.
func IsGuest(ctx context.Context) bool {
	_, ok := ctx.Value(UserKey).(User)
	return !ok
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
