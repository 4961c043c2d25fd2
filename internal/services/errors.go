package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("record already exists")
	ErrInvalidCredentials = errors.New("invalid account or password")
)

// Storage error codes reported back to the uploading page.
const (
	StorageCreateDir    = "ERROR_CREATE_DIR"
	StorageNotWriteable = "ERROR_DIR_NOT_WRITEABLE"
	StorageWriteFailed  = "ERROR_WRITE_FILE"
	StorageNoFilePosted = "post error"
)

// StorageError is a failed upload. Code is shown to the caller as is.
type StorageError struct {
	Code string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *StorageError) Unwrap() error { return e.Err }

// StorageCode returns the storage error code carried by err, or "".
func StorageCode(err error) string {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// ValidationErrors maps a form field to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// notFound converts gorm's missing-row error to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
