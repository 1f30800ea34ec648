package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID returns a ULID whose timestamp is t, so run IDs sort by start time.
func NewID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}
