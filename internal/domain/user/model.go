package user

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Principal is the verified identity a request carries after the auth
// middleware. Core operations receive it by value and never see the
// credential it was derived from.
type Principal struct {
	UserID string
	Email  string
}
