package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"inventory/apperrors"
	"inventory/auth"
	"inventory/models"
	"inventory/repository"
	"inventory/validation"
)

const (
	minAge = 18
	maxAge = 100
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(userID, email, userType string) (string, error)
}

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	ChatUsers(ctx context.Context) ([]models.ChatUser, error)
	Register(ctx context.Context, in models.RegisterInput) (*models.Registration, error)
	Login(ctx context.Context, in models.LoginInput) (*models.Session, error)
	UpdateUsername(ctx context.Context, caller *auth.Claims, in models.UpdateUsernameInput) (string, error)
	ChangePassword(ctx context.Context, caller *auth.Claims, in models.ChangePasswordInput) error
	DeleteAccount(ctx context.Context, caller *auth.Claims) error
	Logout(ctx context.Context, caller *auth.Claims) error
}

type userService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	hasher PasswordHasher
	issuer TokenIssuer
	logger *zap.Logger
}

func NewUserService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	logger *zap.Logger,
) UserService {
	return &userService{users: users, tokens: tokens, hasher: hasher, issuer: issuer, logger: logger}
}

var errUserNotFound = apperrors.NotFound("User not found")

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *userService) ChatUsers(ctx context.Context) ([]models.ChatUser, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active users: %w", err)
	}

	out := make([]models.ChatUser, 0, len(users))
	for _, u := range users {
		out = append(out, models.ChatUser{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Username:  u.Username,
			Type:      u.Type,
		})
	}
	return out, nil
}

func normalizeRegistration(in *models.RegisterInput) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Age = json.Number(strings.TrimSpace(string(in.Age)))
	in.Gender = strings.TrimSpace(in.Gender)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Address = strings.TrimSpace(in.Address)
}

// Register creates an active account of type "user" and returns it with a
// fresh token.
func (s *userService) Register(ctx context.Context, in models.RegisterInput) (*models.Registration, error) {
	normalizeRegistration(&in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	age, ok := wholeNumber(in.Age)
	if !ok || age < minAge || age > maxAge {
		return nil, apperrors.InvalidField("age", fmt.Sprintf("Age must be between %d and %d", minAge, maxAge))
	}

	existing, err := s.users.FindByEmailOrUsername(ctx, in.Email, in.Username)
	switch {
	case err == nil && existing.Email == in.Email:
		return nil, apperrors.Conflict("email", "Email already registered")
	case err == nil:
		return nil, apperrors.Conflict("username", "Username already taken")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Age:           age,
		Gender:        in.Gender,
		ContactNumber: in.ContactNumber,
		Email:         in.Email,
		Username:      in.Username,
		Address:       in.Address,
		PasswordHash:  hash,
		IsActive:      true,
		Type:          models.UserTypeUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var dup *repository.DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, apperrors.Conflict(dup.Field, dup.Field+" already exists")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID.Hex(), user.Email, user.Type)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user registered", zap.String("id", user.ID.Hex()), zap.String("username", user.Username))
	return &models.Registration{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Username:  user.Username,
		Type:      user.Type,
		Token:     token,
	}, nil
}

func (s *userService) Login(ctx context.Context, in models.LoginInput) (*models.Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.Forbidden("Your account is inactive. Please contact support.")
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("verifying password: %w", err)
	}

	token, err := s.issuer.Issue(user.ID.Hex(), user.Email, user.Type)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &models.Session{
		Message:   "Login successful",
		Token:     token,
		Type:      user.Type,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func callerID(caller *auth.Claims) (primitive.ObjectID, error) {
	if caller == nil {
		return primitive.NilObjectID, apperrors.Unauthorized("Token required")
	}
	oid, err := primitive.ObjectIDFromHex(caller.UserID)
	if err != nil {
		return primitive.NilObjectID, apperrors.Unauthorized("Invalid or expired token")
	}
	return oid, nil
}

// UpdateUsername changes the caller's username and returns the stored value.
func (s *userService) UpdateUsername(ctx context.Context, caller *auth.Claims, in models.UpdateUsernameInput) (string, error) {
	oid, err := callerID(caller)
	if err != nil {
		return "", err
	}

	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	if err := validation.Struct(in); err != nil {
		return "", err
	}

	user, err := s.users.UpdateUsername(ctx, oid, in.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", errUserNotFound
	}
	var dup *repository.DuplicateKeyError
	if errors.As(err, &dup) {
		return "", apperrors.Conflict("username", "Username already taken")
	}
	if err != nil {
		return "", fmt.Errorf("updating username: %w", err)
	}
	return user.Username, nil
}

func (s *userService) ChangePassword(ctx context.Context, caller *auth.Claims, in models.ChangePasswordInput) error {
	oid, err := callerID(caller)
	if err != nil {
		return err
	}
	if err := validation.Struct(in); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return errUserNotFound
	}
	if err != nil {
		return fmt.Errorf("finding user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, in.CurrentPassword); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return apperrors.Unauthorized("Current password is incorrect")
		}
		return fmt.Errorf("verifying password: %w", err)
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	err = s.users.UpdatePassword(ctx, oid, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return errUserNotFound
	}
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

// DeleteAccount removes the caller and revokes the token they presented.
func (s *userService) DeleteAccount(ctx context.Context, caller *auth.Claims) error {
	oid, err := callerID(caller)
	if err != nil {
		return err
	}

	deleted, err := s.users.Delete(ctx, oid)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if !deleted {
		return errUserNotFound
	}

	if err := s.revoke(ctx, caller); err != nil {
		s.logger.Warn("revoking token of deleted account", zap.String("user", caller.UserID), zap.Error(err))
	}
	s.logger.Info("account deleted", zap.String("id", caller.UserID))
	return nil
}

func (s *userService) Logout(ctx context.Context, caller *auth.Claims) error {
	if caller == nil {
		return apperrors.Unauthorized("Token required")
	}
	if err := s.revoke(ctx, caller); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}

func (s *userService) revoke(ctx context.Context, caller *auth.Claims) error {
	if caller.ID == "" {
		return nil
	}
	expiresAt := time.Now().Add(auth.DefaultTTL)
	if caller.ExpiresAt != nil {
		expiresAt = caller.ExpiresAt.Time
	}
	return s.tokens.Revoke(ctx, caller.ID, expiresAt)
}
