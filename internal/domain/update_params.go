package domain

import "time"

// Partial-update parameter structs. A nil pointer means "leave the field
// as it is"; writes carry only the fields the caller set.

// PostUpdate carries a partial update for a post.
type PostUpdate struct {
	Done          *bool
	Link          *string
	Caption       *string
	CarouselLinks []string // nil = unchanged, empty slice = clear
}

// StoriesUpdate carries a partial update for a day's stories record.
type StoriesUpdate struct {
	Done  *bool
	Notes *string
}

// NewsletterUpdate carries a partial update for a newsletter issue.
type NewsletterUpdate struct {
	Status *ContentStatus
	Link   *string
}

// TaskUpdate carries a partial update for a task.
type TaskUpdate struct {
	Title       *string
	Description *string
	Tag         *string
	Status      *TaskStatus
	Date        *time.Time
	ClearDate   bool
}

// EpisodeUpdate carries a partial update for a podcast episode.
type EpisodeUpdate struct {
	Title         *string
	CaptivateLink *string
	YouTubeLink   *string
	ShowNotes     *string
	Status        *ContentStatus
	Date          *time.Time
}

// ClipUpdate carries a partial update for a podcast clip.
type ClipUpdate struct {
	Title         *string
	CaptivateLink *string
	YouTubeLink   *string
	Date          *time.Time
}

// FocusUpdate carries a partial update for a sprint focus.
type FocusUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Products    []string // nil = unchanged
	Active      *bool
}
