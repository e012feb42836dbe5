package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/budgetbee/budgetbee/internal/event_bus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	// CreateUser stores the identity row and publishes user.created in the same transaction, so the
	// user never exists without the seeded catalog.
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserServiceImpl struct {
	repo       Repo
	transactor database.Transactor
	eventBus   *event_bus.EventBus
}

func NewUserService(repo Repo, transactor database.Transactor, eventBus *event_bus.EventBus) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, transactor: transactor, eventBus: eventBus}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.GetUser(ctx, userId)
}

func (u *UserServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	user.Username = strings.TrimSpace(user.Username)
	user.DisplayName = strings.TrimSpace(user.DisplayName)
	if err := validate(user, true); err != nil {
		return User{}, err
	}
	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}

	var created User
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = u.repo.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		return u.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.UserCreatedType, event_bus.UserCreated{
			Id:        created.Id,
			Uid:       created.Uid,
			Username:  created.Username,
			CreatedAt: created.CreatedAt,
		}))
	})
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	log.Infof("created user %s (%d)", created.Username, created.Id)
	return created, nil
}

func (u *UserServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	user.DisplayName = strings.TrimSpace(user.DisplayName)
	if err := validate(user, false); err != nil {
		return User{}, err
	}
	return u.repo.UpdateUser(ctx, userId, user)
}

func (u *UserServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	return u.repo.IsUsernameAvailable(ctx, strings.TrimSpace(username))
}

func validate(user User, creating bool) error {
	validationErr := &apperrors.ValidationError{}
	if creating && user.Username == "" {
		validationErr.Add("username", "is required")
	}
	if user.DisplayName == "" {
		validationErr.Add("displayName", "is required")
	}
	if user.Email != "" {
		if _, err := mail.ParseAddress(user.Email); err != nil {
			validationErr.Add("email", "is not a valid address")
		}
	}
	return validationErr.OrNil()
}
