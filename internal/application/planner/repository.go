package planner

import (
	"context"

	"github.com/epicplan/planner/internal/domain"
)

// Repository defines storage operations for the content planner.
// All create/update operations return the entity as persisted.
type Repository interface {
	// === Bulk loads (one per collection, independent of each other) ===

	LoadPosts(ctx context.Context) ([]domain.Post, error)
	LoadStories(ctx context.Context) ([]domain.Stories, error)
	LoadNewsletters(ctx context.Context) ([]domain.Newsletter, error)
	LoadTasks(ctx context.Context) ([]domain.Task, error)
	LoadEpisodes(ctx context.Context) ([]domain.PodcastEpisode, error)
	LoadClips(ctx context.Context) ([]domain.PodcastClip, error)
	LoadWeekConfigs(ctx context.Context) ([]domain.WeekConfig, error)

	// LoadActiveFocuses returns sprint focuses filtered to active=true.
	LoadActiveFocuses(ctx context.Context) ([]domain.SprintFocus, error)

	// === Content upserts by natural key ===

	// UpsertPost persists a post keyed by (date, platform).
	UpsertPost(ctx context.Context, post domain.Post) (domain.Post, error)

	// UpsertStories persists the stories record keyed by date.
	UpsertStories(ctx context.Context, stories domain.Stories) (domain.Stories, error)

	// UpsertNewsletter persists a newsletter issue keyed by (type, date).
	UpsertNewsletter(ctx context.Context, issue domain.Newsletter) (domain.Newsletter, error)

	// === Tasks ===

	CreateTask(ctx context.Context, task domain.Task) (domain.Task, error)

	// UpdateTask applies a partial update.
	// Returns domain.ErrTaskNotFound if the task doesn't exist.
	UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (domain.Task, error)

	// DeleteTask removes a task. No cascading effects.
	DeleteTask(ctx context.Context, id string) error

	// === Podcast ===

	CreateEpisode(ctx context.Context, episode domain.PodcastEpisode) (domain.PodcastEpisode, error)
	UpdateEpisode(ctx context.Context, id string, update domain.EpisodeUpdate) (domain.PodcastEpisode, error)
	CreateClip(ctx context.Context, clip domain.PodcastClip) (domain.PodcastClip, error)
	UpdateClip(ctx context.Context, id string, update domain.ClipUpdate) (domain.PodcastClip, error)

	// === Sprint focuses ===

	CreateFocus(ctx context.Context, focus domain.SprintFocus) (domain.SprintFocus, error)
	UpdateFocus(ctx context.Context, id string, update domain.FocusUpdate) (domain.SprintFocus, error)

	// DeactivateFocus soft-deletes a focus (active=false); the row stays.
	DeactivateFocus(ctx context.Context, id string) error

	// === Week configuration (column-targeted partial upserts by week id) ===

	SetWeekFocus(ctx context.Context, weekID string, focusID *string) (domain.WeekConfig, error)
	SetWeekLandingPage(ctx context.Context, weekID, url string) (domain.WeekConfig, error)
	SetWeekOfferPage(ctx context.Context, weekID, url string) (domain.WeekConfig, error)
	SetWeekCTA(ctx context.Context, weekID string, isCTA bool) (domain.WeekConfig, error)

	// === Legacy import marker ===

	LegacyImportDone(ctx context.Context) (bool, error)
	MarkLegacyImportDone(ctx context.Context) error
}
