// Package storage defines the durable key-value contract the todo list is
// persisted through. Backends live in subpackages.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is a durable string-keyed byte store. Set overwrites the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

var keyRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidKey rejects keys that could escape a file backend's directory.
func ValidKey(key string) error {
	if len(key) > 128 || !keyRegexp.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
