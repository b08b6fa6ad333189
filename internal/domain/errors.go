package domain

import "errors"

// Domain errors returned by the planner service and repository implementations.

var (
	// ErrNotConfigured indicates the store is not configured; the facade
	// runs read-only over an empty snapshot and rejects all writes.
	ErrNotConfigured = errors.New("content store not configured")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrTaskNotFound indicates the specified task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEpisodeNotFound indicates the specified podcast episode does not exist.
	ErrEpisodeNotFound = errors.New("podcast episode not found")

	// ErrClipNotFound indicates the specified podcast clip does not exist.
	ErrClipNotFound = errors.New("podcast clip not found")

	// ErrFocusNotFound indicates the referenced sprint focus does not exist
	// or has been deactivated.
	ErrFocusNotFound = errors.New("sprint focus not found")

	// ErrTitleRequired indicates a required title was empty.
	ErrTitleRequired = errors.New("title is required")

	// ErrTitleTooLong indicates a title exceeded the length limit.
	ErrTitleTooLong = errors.New("title exceeds 255 characters")

	// ErrInvalidTag indicates a tag outside the fixed tag set.
	ErrInvalidTag = errors.New("invalid task tag")

	// ErrInvalidTaskStatus indicates an unknown task status value.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrInvalidContentStatus indicates an unknown newsletter/episode status.
	ErrInvalidContentStatus = errors.New("invalid content status")

	// ErrInvalidPlatform indicates an unknown platform identifier.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrInvalidNewsletterType indicates an unknown newsletter type.
	ErrInvalidNewsletterType = errors.New("invalid newsletter type")

	// ErrInvalidDate indicates a date that does not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidWeekID indicates a week id that does not parse as <year>-W<week>.
	ErrInvalidWeekID = errors.New("invalid week id, expected <year>-W<week>")

	// ErrUnauthorized indicates a missing, unknown, or expired session token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidPassword indicates the shared password did not match.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrMigrationDone indicates the legacy snapshot import already ran.
	ErrMigrationDone = errors.New("legacy import already completed")
)
