package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column limits for free text the bot stores
const (
	MaxSourceURLLength = 200
	MaxNameLength      = 100
)

// Field names used in TooLongError
const (
	FieldSourceURL = "url"
	FieldName      = "name"
	FieldCategory  = "category"
)

// Entity names used in NotFound, AlreadyExists and NotActive errors
const (
	EntityCreator  = "creator"
	EntityEditor   = "editor"
	EntityDesigner = "designer"
	EntityOverseer = "overseer"
	EntityCategory = "category"
	EntityRequest  = "request"
)

var (
	ErrAlreadyAssigned      = errors.New("editor is already assigned to this creator")
	ErrNotAssigned          = errors.New("editor is not assigned to this creator")
	ErrConfigMissing        = errors.New("guild is not configured")
	ErrChannelUnset         = errors.New("single thumbnail channel is not set")
	ErrCategoryRequired     = errors.New("a category is required")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryChannelUnset = errors.New("category has no channel")
	ErrNoCategories         = errors.New("no active categories")
	ErrAlreadyClaimed       = errors.New("request is already claimed")
	ErrNotClaimed           = errors.New("request is not claimed")
	ErrAlreadySubmitted     = errors.New("request has already been submitted")
	ErrInvalidURL           = errors.New("url must be a YouTube link")
	ErrInvalidPeriod        = errors.New("month must be 1-12 and year 2000-9999")
	ErrInvalidName          = errors.New("name must not be empty")
)

// TooLongError reports a value longer than its column allows
type TooLongError struct {
	Field string
	Max   int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("%s must be at most %d characters", e.Field, e.Max)
}

// checkLength counts runes so the limit matches what users see and what
// postgres varchar enforces.
func checkLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return &TooLongError{Field: field, Max: max}
	}
	return nil
}

// NotFoundError reports that no active row exists for an entity
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// AlreadyExistsError reports that an active row already exists
type AlreadyExistsError struct {
	Entity string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.Entity)
}

// NotActiveError reports that a row exists but has been deactivated
type NotActiveError struct {
	Entity string
}

func (e *NotActiveError) Error() string {
	return fmt.Sprintf("%s is not active", e.Entity)
}

// RolesIncompleteError lists the staff roles a guild has not configured
type RolesIncompleteError struct {
	Missing []string
}

func (e *RolesIncompleteError) Error() string {
	return fmt.Sprintf("roles not configured: %s", strings.Join(e.Missing, ", "))
}

// UnauthorizedError reports that the actor may not perform an action
type UnauthorizedError struct {
	Action string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("not allowed to %s", e.Action)
}

// PlatformActionFailedError reports a chat platform call that failed during a transition
type PlatformActionFailedError struct {
	Step string
	Err  error
}

func (e *PlatformActionFailedError) Error() string {
	return fmt.Sprintf("platform action %q failed: %v", e.Step, e.Err)
}

func (e *PlatformActionFailedError) Unwrap() error {
	return e.Err
}

// NoRecordsError reports an export period without any completed thumbnails
type NoRecordsError struct {
	Month int
	Year  int
}

func (e *NoRecordsError) Error() string {
	return fmt.Sprintf("no thumbnail records for %02d/%d", e.Month, e.Year)
}

// IsNotFound reports whether err is a NotFoundError for the given entity.
// An empty entity matches any NotFoundError.
func IsNotFound(err error, entity string) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	return entity == "" || nf.Entity == entity
}
