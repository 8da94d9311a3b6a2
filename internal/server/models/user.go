// Package models defines server-side data models persisted in the database.
package models

import "time"

type User struct {
	ID                int64
	FirstName         string
	LastName          string
	Email             string
	PasswordHash      []byte
	PasswordChangedAt time.Time
	CreatedAt         time.Time
}
