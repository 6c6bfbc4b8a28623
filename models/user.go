package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	UserTypeUser  = "user"
	UserTypeAdmin = "admin"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName     string             `bson:"firstName" json:"firstName"`
	LastName      string             `bson:"lastName" json:"lastName"`
	Age           int                `bson:"age" json:"age"`
	Gender        string             `bson:"gender" json:"gender"`
	ContactNumber string             `bson:"contactNumber" json:"contactNumber"`
	Email         string             `bson:"email" json:"email"`
	Username      string             `bson:"username" json:"username"`
	Address       string             `bson:"address" json:"address"`
	PasswordHash  string             `bson:"password,omitempty" json:"-"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	Type          string             `bson:"type" json:"type"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ChatUser is the public directory view of an active user.
type ChatUser struct {
	ID        primitive.ObjectID `json:"id"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Username  string             `json:"username"`
	Type      string             `json:"type"`
}

type RegisterInput struct {
	FirstName     string      `json:"firstName" validate:"required"`
	LastName      string      `json:"lastName" validate:"required"`
	Age           json.Number `json:"age" validate:"required"`
	Gender        string      `json:"gender" validate:"required"`
	ContactNumber string      `json:"contactNumber" validate:"required"`
	Email         string      `json:"email" validate:"required,mailaddr"`
	Username      string      `json:"username" validate:"required"`
	Password      string      `json:"password" validate:"required,min=8"`
	Address       string      `json:"address" validate:"required"`
}

// Registration is returned after a successful sign-up.
type Registration struct {
	ID        primitive.ObjectID `json:"id"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Email     string             `json:"email"`
	Username  string             `json:"username"`
	Type      string             `json:"type"`
	Token     string             `json:"token"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Session struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	Type      string `json:"type"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type UpdateUsernameInput struct {
	Username string `json:"username" validate:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}
