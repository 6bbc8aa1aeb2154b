package domain

import "github.com/google/uuid"

// NewID creates a new opaque unique identifier.
func NewID() string {
	return uuid.New().String()
}
