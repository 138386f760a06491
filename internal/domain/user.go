package domain

import "context"

// User records are provisioned by the external auth collaborator; this
// service only reads them for booking ownership and display identity.
type User struct {
	ID      int
	Name    string
	Email   string
	IsAdmin bool
}

type UserRepository interface {
	GetById(ctx context.Context, id int) (*User, error)
}
