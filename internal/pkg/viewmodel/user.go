package viewmodel

import "github.com/khanh-pt/realworld/app/models"

// User is the wire representation of the authenticated user
type User struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Bio          string `json:"bio"`
	Image        string `json:"image"`
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// NewUser assembles the wire shape for a user plus freshly issued tokens
func NewUser(user *models.User, token, refreshToken string) User {
	return User{
		Username:     user.Username,
		Email:        user.Email,
		Bio:          user.Bio,
		Image:        user.Image,
		Token:        token,
		RefreshToken: refreshToken,
	}
}

// Profile is the wire representation of another user's public profile
type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// NewProfile assembles the wire shape for a profile
func NewProfile(user *models.User, following bool) Profile {
	return Profile{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}
}
