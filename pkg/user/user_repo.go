package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/budgetbee/budgetbee/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = fmt.Errorf("user %w", apperrors.ErrNotFound)

type Repo interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (User, error) {
	query := `INSERT INTO users (uid, username, display_name, email) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := database.Conn(ctx, u.db).QueryRow(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Email,
	).Scan(&user.Id, &user.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return User{}, apperrors.NewValidationError("username", "is already taken")
		}
		log.Errorf("failed to create user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, email, created_at FROM users WHERE id = $1`
	return u.getOne(ctx, query, id)
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, email, created_at FROM users WHERE uid = $1`
	return u.getOne(ctx, query, uid)
}

func (u *UserRepoImpl) getOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	err := database.Conn(ctx, u.db).QueryRow(ctx, query, arg).
		Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.Email, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user %v not found", arg)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET display_name = $1, email = $2 WHERE id = $3
			  RETURNING id, uid, username, display_name, email, created_at`
	var updated User
	err := database.Conn(ctx, u.db).QueryRow(ctx, query, user.DisplayName, user.Email, userId).
		Scan(&updated.Id, &updated.Uid, &updated.Username, &updated.DisplayName, &updated.Email, &updated.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Info("no rows affected of updating user")
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to update user: %v", err)
		return User{}, err
	}
	return updated, nil
}

func (u *UserRepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE username = $1`
	var count int
	err := database.Conn(ctx, u.db).QueryRow(ctx, query, username).Scan(&count)
	if err != nil {
		log.Errorf("failed to check username availability: %v", err)
		return false, err
	}
	return count == 0, nil
}
