package repository

import (
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("document not found")

// DuplicateKeyError reports a unique index violation on Field.
type DuplicateKeyError struct {
	Field string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s: %v", e.Field, e.Err)
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

var (
	dupIndexPattern = regexp.MustCompile(`index:\s+(?:\S*\$)?(\w+?)_-?1\b`)
	dupKeyPattern   = regexp.MustCompile(`dup key:\s*\{\s*"?(\w+)"?\s*:`)
)

// asDuplicateKey converts a Mongo duplicate key error into a
// *DuplicateKeyError naming the offending field. Other errors are returned
// unchanged.
func asDuplicateKey(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	return &DuplicateKeyError{Field: duplicateField(err.Error()), Err: err}
}

func duplicateField(msg string) string {
	if m := dupKeyPattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	if m := dupIndexPattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return "unknown"
}
