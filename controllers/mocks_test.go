package controllers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"inventory/auth"
	"inventory/models"
)

type mockItemService struct {
	mock.Mock
}

func (m *mockItemService) List(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]models.Item)
	return items, args.Error(1)
}

func (m *mockItemService) Get(ctx context.Context, id string) (*models.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*models.Item)
	return item, args.Error(1)
}

func (m *mockItemService) Create(ctx context.Context, in models.CreateItemInput) (*models.Item, error) {
	args := m.Called(ctx, in)
	item, _ := args.Get(0).(*models.Item)
	return item, args.Error(1)
}

func (m *mockItemService) Update(ctx context.Context, id string, patch models.ItemPatch) (*models.Item, error) {
	args := m.Called(ctx, id, patch)
	item, _ := args.Get(0).(*models.Item)
	return item, args.Error(1)
}

func (m *mockItemService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *mockUserService) ChatUsers(ctx context.Context) ([]models.ChatUser, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.ChatUser)
	return users, args.Error(1)
}

func (m *mockUserService) Register(ctx context.Context, in models.RegisterInput) (*models.Registration, error) {
	args := m.Called(ctx, in)
	reg, _ := args.Get(0).(*models.Registration)
	return reg, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, in models.LoginInput) (*models.Session, error) {
	args := m.Called(ctx, in)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *mockUserService) UpdateUsername(ctx context.Context, caller *auth.Claims, in models.UpdateUsernameInput) (string, error) {
	args := m.Called(ctx, caller, in)
	return args.String(0), args.Error(1)
}

func (m *mockUserService) ChangePassword(ctx context.Context, caller *auth.Claims, in models.ChangePasswordInput) error {
	return m.Called(ctx, caller, in).Error(0)
}

func (m *mockUserService) DeleteAccount(ctx context.Context, caller *auth.Claims) error {
	return m.Called(ctx, caller).Error(0)
}

func (m *mockUserService) Logout(ctx context.Context, caller *auth.Claims) error {
	return m.Called(ctx, caller).Error(0)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }
