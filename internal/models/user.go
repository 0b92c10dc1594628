package models

import "time"

// User is one managed record. Email is unique case-insensitively across
// the whole table; CreatedAt is set once at persistence time.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Status    string    `db:"status" json:"status"` // ACTIVE / INACTIVE (string)
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UserRequest struct {
	Name   string `json:"name" form:"name" validate:"required"`
	Email  string `json:"email" form:"email" validate:"required"`
	Status string `json:"status" form:"status"`
}

// DefaultStatus is applied when a record is created with a blank status.
const DefaultStatus = "ACTIVE"
