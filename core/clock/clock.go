// Package clock abstracts time and identifier generation so workflows are deterministic in tests.
package clock

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Real returns the wall clock time.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// IDGenerator produces opaque unique identifiers.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs rendered as 32 hex characters without dashes.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return strings.ReplaceAll(uuid.New().String(), "-", "") }
