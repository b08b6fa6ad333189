package domain

import "time"

// Platform identifies a social channel a post is scheduled on.
type Platform string

const (
	PlatformInstagram     Platform = "instagram"
	PlatformBusinessLunch Platform = "instagram-business-lunch"
	PlatformLinkedIn      Platform = "linkedin"
	PlatformYouTube       Platform = "youtube"
)

// NewsletterType identifies one of the two recurring newsletters.
type NewsletterType string

const (
	NewsletterRolandsRiff      NewsletterType = "rolands-riff"
	NewsletterCrazyExperiments NewsletterType = "crazy-experiments"
)

// ContentStatus is the lifecycle of a newsletter issue or podcast episode.
type ContentStatus string

const (
	ContentStatusPending    ContentStatus = "pending"
	ContentStatusInProgress ContentStatus = "in-progress"
	ContentStatusCompleted  ContentStatus = "completed"
)

// TaskStatus is the lifecycle of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusBlocked    TaskStatus = "blocked"
)

// TaskTags is the fixed set of tags a task may carry.
var TaskTags = []string{
	"studio work",
	"presentation",
	"content creation",
	"editing",
	"planning",
	"meeting",
	"research",
	"admin",
	"podcast",
	"newsletter",
}

// Post is a scheduled social post, keyed by (date, platform).
//
// The business-lunch platform is only meaningful on Tuesdays and Thursdays;
// callers are expected to respect that, the store does not enforce it.
type Post struct {
	Date     time.Time
	Platform Platform

	Done          bool
	Link          string
	Caption       string
	CarouselLinks []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stories is the per-day Instagram stories record, distinct from the
// instagram post on the same date.
type Stories struct {
	Date time.Time

	Done  bool
	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Newsletter is one issue of a recurring newsletter, keyed by (type, date).
type Newsletter struct {
	Type NewsletterType
	Date time.Time

	Status ContentStatus
	Link   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Task is a free-standing to-do, optionally attached to a calendar date.
type Task struct {
	ID          string
	Title       string
	Description string
	Tag         string
	Status      TaskStatus
	Date        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PodcastEpisode is one episode of the podcast. Append-only, editable by id.
type PodcastEpisode struct {
	ID            string
	Title         string
	CaptivateLink string
	YouTubeLink   string
	ShowNotes     string
	Status        ContentStatus
	Date          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PodcastClip is a short-form clip cut from an episode. Clips carry no
// status; they exist or they don't.
type PodcastClip struct {
	ID            string
	Title         string
	CaptivateLink string
	YouTubeLink   string
	Date          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SprintFocus is a thematic label (product or campaign) assignable to a
// calendar week. Default focuses are seeded by migration; user-created
// ones carry the "custom-" id prefix so defaults are never clobbered.
type SprintFocus struct {
	ID          string
	Name        string
	Description string
	Color       string // perceptual color spec, e.g. "oklch(0.75 0.15 264)"
	Products    []string
	Active      bool
	IsCustom    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomFocusPrefix marks user-created sprint focuses.
const CustomFocusPrefix = "custom-"

// WeekConfig is the per-week sprint configuration, keyed by the week id
// ("<isoYear>-W<weekNumber>"). Each field is independently settable;
// writing one must not erase the others.
type WeekConfig struct {
	WeekID         string
	FocusID        *string
	LandingPageURL *string
	OfferPageURL   *string
	IsCTAWeek      bool

	UpdatedAt time.Time
}

// WeekKind classifies a calendar week for content planning.
type WeekKind string

const (
	WeekContentTheme WeekKind = "content-theme"
	WeekCTAContent   WeekKind = "cta-content"
	WeekCustomFocus  WeekKind = "custom-focus"
)
