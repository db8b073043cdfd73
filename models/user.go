package models

import "time"

// UserRole enumerates account roles.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills       []string  `bson:"skills,omitempty" json:"skills,omitempty"`
	Role         UserRole  `bson:"role" json:"role"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserProfile is the public projection of a user.
type UserProfile struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Bio    string   `json:"bio,omitempty"`
	Skills []string `json:"skills,omitempty"`
}

// Profile returns the public projection of u.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Bio:    u.Bio,
		Skills: u.Skills,
	}
}
