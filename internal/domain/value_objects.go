package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Title is a validated title value object (1-255 characters).
type Title struct {
	value string
}

// NewTitle creates a new Title, validating the input.
func NewTitle(s string) (Title, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return Title{}, ErrTitleRequired
	}

	if len(s) > 255 {
		return Title{}, ErrTitleTooLong
	}

	return Title{value: s}, nil
}

// String returns the title value.
func (t Title) String() string {
	return t.value
}

// NewTaskStatus validates and creates a TaskStatus.
// An empty input defaults to pending.
func NewTaskStatus(s string) (TaskStatus, error) {
	if s == "" {
		return TaskStatusPending, nil
	}

	status := TaskStatus(strings.ToLower(s))

	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusBlocked:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidTaskStatus, s)
	}
}

// NewContentStatus validates and creates a ContentStatus.
// An empty input defaults to pending.
func NewContentStatus(s string) (ContentStatus, error) {
	if s == "" {
		return ContentStatusPending, nil
	}

	status := ContentStatus(strings.ToLower(s))

	switch status {
	case ContentStatusPending, ContentStatusInProgress, ContentStatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidContentStatus, s)
	}
}

// NewPlatform validates and creates a Platform.
func NewPlatform(s string) (Platform, error) {
	platform := Platform(strings.ToLower(s))

	switch platform {
	case PlatformInstagram, PlatformBusinessLunch, PlatformLinkedIn, PlatformYouTube:
		return platform, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidPlatform, s)
	}
}

// NewNewsletterType validates and creates a NewsletterType.
func NewNewsletterType(s string) (NewsletterType, error) {
	typ := NewsletterType(strings.ToLower(s))

	switch typ {
	case NewsletterRolandsRiff, NewsletterCrazyExperiments:
		return typ, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidNewsletterType, s)
	}
}

// NewTaskTag validates a tag against the fixed tag set.
// An empty tag is allowed (untagged task).
func NewTaskTag(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	tag := strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(TaskTags, tag) {
		return "", fmt.Errorf("%w: %s", ErrInvalidTag, s)
	}

	return tag, nil
}

// NormalizeURL prefixes bare URLs with https:// so stored values always
// carry a scheme. URLs that already have one pass through unchanged.
// Empty input stays empty (clears the field).
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}

	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return url
	}

	return "https://" + url
}
