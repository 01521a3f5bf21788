package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrUserDataInvalid = errors.New("user data invalid")
var ErrUsernameTaken = errors.New("username already taken")

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, uid string) error
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.GetUser(ctx, userId)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if user.Username == "" {
		return User{}, ErrUserDataInvalid
	}
	available, err := u.repo.IsUsernameAvailable(ctx, user.Username)
	if err != nil {
		return User{}, err
	}
	if !available {
		return User{}, ErrUsernameTaken
	}

	user.Uid = uuid.NewString()
	if user.Settings.DisplayCurrency == "" {
		user.Settings.DisplayCurrency = "USD"
	}
	if user.Settings.Theme == "" {
		user.Settings.Theme = "ocean"
	}

	userId, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	return user, nil
}

func (u *UserServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.UpdateUser(ctx, userId, user)
}

func (u *UserServiceImpl) DeleteUser(ctx context.Context, uid string) error {
	user, err := u.repo.GetUserByUid(ctx, uid)
	if err != nil {
		return err
	}
	return u.repo.DeleteUser(ctx, user.Id)
}

func (u *UserServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return u.repo.GetAllUsers(ctx)
}

func (u *UserServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	return u.repo.IsUsernameAvailable(ctx, username)
}
