package domain

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// User field limits.
const (
	MaxUsernameLength = 50
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores everything past 72 bytes
)

// User validation errors
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooLong     = errors.New("username must be at most 50 characters long")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User is a registered account. A user owns projects, may be assigned tasks,
// and authors comments.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"-"` // plaintext, only set during registration
	HashedPassword string `json:"-"`
}

// NewUser builds a User from registration input. Username and email are
// trimmed. The caller hashes Password before storing the user.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}

	if password == "" {
		return nil, ErrPasswordTooShort
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if utf8.RuneCountInString(u.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
		return nil
	}

	// Stored users carry only the hash.
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}
