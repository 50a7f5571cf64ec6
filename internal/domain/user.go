package domain

import "time"

type User struct {
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Profile is the user shape returned to clients. The password hash
// never leaves the service layer.
type Profile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (u User) Profile() Profile {
	return Profile{Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, IsAdmin: u.IsAdmin}
}
