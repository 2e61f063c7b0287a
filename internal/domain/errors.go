package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicatePost  = errors.New("post already stored")
	ErrPostNotFound   = errors.New("post not found")
	ErrCollectionBusy = errors.New("collection sync already in progress")
)

// ConfigError aborts a whole sync run.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Reason)
}
