package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus enum
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// UserStatuses lists the accepted account statuses
var UserStatuses = []UserStatus{UserActive, UserInactive, UserSuspended}

// Role separates administrators from regular users
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name" validate:"required,max=50"`
	Email                string             `bson:"email" json:"email" validate:"required,email"`
	Password             string             `bson:"password,omitempty" json:"-"`
	Phone                string             `bson:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,phone"`
	Location             string             `bson:"location,omitempty" json:"location,omitempty" validate:"max=200"`
	Role                 Role               `bson:"role" json:"role"`
	Status               UserStatus         `bson:"status" json:"status" validate:"omitempty,oneof=active inactive suspended"`
	EmailVerified        bool               `bson:"emailVerified" json:"emailVerified"`
	RequestsCount        int64              `bson:"requestsCount" json:"requestsCount"`
	RegisteredAt         time.Time          `bson:"registeredAt" json:"registeredAt"`
	LastLogin            *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	ResetPasswordToken   string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires *time.Time         `bson:"resetPasswordExpires,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterInput is the payload accepted at registration
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// ProfileInput carries the profile fields a user may edit
type ProfileInput struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
}

const (
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt input limit
)

func checkPassword(password string) string {
	switch {
	case len(password) < minPasswordLength:
		return "must be at least 6 characters"
	case len(password) > maxPasswordLength:
		return "must be at most 72 bytes"
	}
	return ""
}

// NormalizeEmail makes email lookups case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser validates a registration and returns an active user with a hashed password
func NewUser(in RegisterInput, role Role, now time.Time) (*User, error) {
	u := &User{
		Name:         strings.TrimSpace(in.Name),
		Email:        NormalizeEmail(in.Email),
		Password:     in.Password,
		Phone:        strings.TrimSpace(in.Phone),
		Location:     strings.TrimSpace(in.Location),
		Role:         role,
		Status:       UserActive,
		RegisteredAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var verrs ValidationErrors
	if err := validateStruct(u); err != nil {
		ve, ok := AsValidationErrors(err)
		if !ok {
			return nil, err
		}
		verrs = ve
	}
	if msg := checkPassword(in.Password); msg != "" {
		verrs.Add("password", msg)
	}
	if err := verrs.Err(); err != nil {
		return nil, err
	}

	if err := u.HashPassword(); err != nil {
		return nil, err
	}
	return u, nil
}

// ApplyProfile edits the profile fields and validates the result
func (u *User) ApplyProfile(in ProfileInput, now time.Time) error {
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Location != nil {
		u.Location = strings.TrimSpace(*in.Location)
	}
	if err := validateStruct(u); err != nil {
		return err
	}
	u.UpdatedAt = now
	return nil
}

// SetPassword validates and hashes a new password, clearing any pending reset
func (u *User) SetPassword(password string, now time.Time) error {
	if msg := checkPassword(password); msg != "" {
		var verrs ValidationErrors
		verrs.Add("password", msg)
		return verrs
	}
	u.Password = password
	if err := u.HashPassword(); err != nil {
		return err
	}
	u.ResetPasswordToken = ""
	u.ResetPasswordExpires = nil
	u.UpdatedAt = now
	return nil
}

// CanLogin reports whether the account status allows signing in
func (u *User) CanLogin() bool {
	return u.Status == "" || u.Status == UserActive
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// ParseUserStatus rejects values outside the account status enum with a field error
func ParseUserStatus(s string) (UserStatus, error) {
	status := UserStatus(strings.TrimSpace(s))
	accepted := make([]string, len(UserStatuses))
	for i, v := range UserStatuses {
		if v == status {
			return status, nil
		}
		accepted[i] = string(v)
	}
	var verrs ValidationErrors
	verrs.Add("status", enumError(s, accepted))
	return "", verrs
}
