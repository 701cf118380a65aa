package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/biztime"
)

// User represents the user aggregate root (pure domain model without persistence concerns)
type User struct {
	id           uint
	username     string
	email        string
	displayName  string
	passwordHash string
	role         authorization.UserRole
	isStaff      bool
	active       bool
	lastLoginAt  *time.Time
	profile      Profile
	createdAt    time.Time
	updatedAt    time.Time
}

// Profile holds the optional contact fields shown on ticket pages.
type Profile struct {
	Phone      string
	Location   string
	Department string
}

// NewUser creates a new user aggregate with initial values
func NewUser(username, email, displayName, passwordHash string, role authorization.UserRole, isStaff bool) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(displayName) == 0 {
		displayName = username
	}
	if len(displayName) > 100 {
		return nil, fmt.Errorf("display name exceeds maximum length of 100 characters")
	}
	if len(passwordHash) == 0 {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	// Admins always count as staff
	if role.IsAdmin() {
		isStaff = true
	}

	now := biztime.NowUTC()
	return &User{
		username:     username,
		email:        email,
		displayName:  displayName,
		passwordHash: passwordHash,
		role:         role,
		isStaff:      isStaff,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(
	id uint,
	username, email, displayName, passwordHash string,
	role authorization.UserRole,
	isStaff bool,
	active bool,
	lastLoginAt *time.Time,
	profile Profile,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if len(username) == 0 {
		return nil, fmt.Errorf("username is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:           id,
		username:     username,
		email:        email,
		displayName:  displayName,
		passwordHash: passwordHash,
		role:         role,
		isStaff:      isStaff,
		active:       active,
		lastLoginAt:  lastLoginAt,
		profile:      profile,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Email() string {
	return u.email
}

func (u *User) DisplayName() string {
	return u.displayName
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) IsStaff() bool {
	return u.isStaff
}

func (u *User) IsActive() bool {
	return u.active
}

func (u *User) LastLoginAt() *time.Time {
	return u.lastLoginAt
}

func (u *User) Profile() Profile {
	return u.profile
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// ChangeRole switches the user's role. Promoting to admin also grants
// staff; demoting does not silently revoke it.
func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	u.role = role
	if role.IsAdmin() {
		u.isStaff = true
	}
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) SetStaff(isStaff bool) error {
	if u.role.IsAdmin() && !isStaff {
		return fmt.Errorf("admin users are always staff")
	}
	u.isStaff = isStaff
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) Activate() {
	u.active = true
	u.updatedAt = biztime.NowUTC()
}

func (u *User) Deactivate() {
	u.active = false
	u.updatedAt = biztime.NowUTC()
}

func (u *User) ChangePasswordHash(hash string) error {
	if len(hash) == 0 {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) UpdateDisplayName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("display name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("display name exceeds maximum length of 100 characters")
	}
	u.displayName = name
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) UpdateEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.email = email
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) UpdateProfile(profile Profile) {
	u.profile = profile
	u.updatedAt = biztime.NowUTC()
}

func (u *User) RecordLogin(at time.Time) {
	u.lastLoginAt = &at
	u.updatedAt = biztime.NowUTC()
}

// CanBeAssignedTickets reports whether tickets may be assigned to this
// user. Only active admins work tickets.
func (u *User) CanBeAssignedTickets() bool {
	return u.active && u.role.IsAdmin()
}

func validateUsername(username string) error {
	if len(username) == 0 {
		return fmt.Errorf("username is required")
	}
	if len(username) > 100 {
		return fmt.Errorf("username exceeds maximum length of 100 characters")
	}
	for _, r := range username {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.' || r == '_' || r == '-') {
			return fmt.Errorf("username may only contain lowercase letters, digits, '.', '_' and '-'")
		}
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) == 0 {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}
