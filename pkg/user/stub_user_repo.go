package user

import (
	"context"
	"time"

	"github.com/budgetbee/budgetbee/internal/apperrors"
)

type StubUserRepository struct {
	nextId int
	data   map[int]User
}

func NewStubUserRepository() *StubUserRepository {
	nextId := 2
	data := map[int]User{}
	return &StubUserRepository{nextId: nextId, data: data}
}

func (s *StubUserRepository) CreateUser(ctx context.Context, user User) (User, error) {
	for _, existing := range s.data {
		if existing.Username == user.Username {
			return User{}, apperrors.NewValidationError("username", "is already taken")
		}
	}
	s.nextId++
	user.Id = s.nextId
	user.CreatedAt = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.data[s.nextId] = user
	return user, nil
}

func (s *StubUserRepository) GetUser(ctx context.Context, id int) (User, error) {
	user, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *StubUserRepository) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, user := range s.data {
		if user.Uid == uid {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepository) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	stored, ok := s.data[userId]
	if !ok {
		return User{}, ErrUserNotFound
	}
	stored.DisplayName = user.DisplayName
	stored.Email = user.Email
	s.data[userId] = stored
	return stored, nil
}

func (s *StubUserRepository) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	for _, user := range s.data {
		if user.Username == username {
			return false, nil
		}
	}
	return true, nil
}
