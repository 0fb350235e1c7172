package services

import (
	"fmt"
	"time"
)

// LockedOutError is returned by Login while a client is throttled.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many login attempts, retry in %s", e.RetryAfter.Round(time.Second))
}
