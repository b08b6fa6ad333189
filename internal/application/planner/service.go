// Package planner is the content store facade: it owns the in-memory
// snapshot of all planner entities, validates and applies writes against
// the repository, and keeps the snapshot consistent with successful
// writes so reads immediately observe them.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/epicplan/planner/internal/domain"
)

// Config holds planner service configuration.
type Config struct {
	// LegacyParityCTA enables the legacy classification mode where weeks
	// with even ISO week numbers count as CTA weeks when no explicit flag
	// or focus is set.
	LegacyParityCTA bool
}

// Service orchestrates all content operations. A Service constructed
// without a repository runs in read-only mode over an empty snapshot and
// rejects every write with domain.ErrNotConfigured.
type Service struct {
	repo Repository // nil = not configured
	cfg  Config

	mu   sync.RWMutex
	snap *Snapshot

	subMu sync.Mutex
	subs  []chan struct{}
}

// NewService creates a planner service backed by repo.
func NewService(repo Repository, cfg Config) *Service {
	return &Service{repo: repo, cfg: cfg, snap: newSnapshot()}
}

// NewReadOnlyService creates the degraded facade used when the store is
// not configured: empty snapshot, default focuses, all writes rejected.
func NewReadOnlyService(cfg Config) *Service {
	svc := &Service{cfg: cfg, snap: newSnapshot()}
	for _, focus := range domain.DefaultSprintFocuses() {
		svc.snap.putFocus(focus)
	}
	return svc
}

// Configured reports whether a repository is attached.
func (s *Service) Configured() bool {
	return s.repo != nil
}

// Snapshot returns the current content snapshot.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe returns a channel that receives a signal after every
// successful mutation. The channel is buffered; a slow consumer misses
// intermediate signals, never blocks a write.
func (s *Service) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

func (s *Service) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Load fetches every collection from the store concurrently and builds a
// fresh snapshot. An individual collection failure is logged and degrades
// to that collection's empty default without aborting the others; a
// failed or empty focus load falls back to the built-in default set.
func (s *Service) Load(ctx context.Context) {
	if s.repo == nil {
		slog.WarnContext(ctx, "content store not configured, running read-only with empty data")
		return
	}

	snap := newSnapshot()

	var (
		wg          sync.WaitGroup
		posts       []domain.Post
		stories     []domain.Stories
		newsletters []domain.Newsletter
		tasks       []domain.Task
		episodes    []domain.PodcastEpisode
		clips       []domain.PodcastClip
		weekConfigs []domain.WeekConfig
		focuses     []domain.SprintFocus
	)

	load := func(collection string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				slog.ErrorContext(ctx, "collection load failed, degrading to empty default",
					"collection", collection,
					"error", err)
			}
		}()
	}

	load("posts", func() (err error) { posts, err = s.repo.LoadPosts(ctx); return })
	load("stories", func() (err error) { stories, err = s.repo.LoadStories(ctx); return })
	load("newsletters", func() (err error) { newsletters, err = s.repo.LoadNewsletters(ctx); return })
	load("tasks", func() (err error) { tasks, err = s.repo.LoadTasks(ctx); return })
	load("podcast_episodes", func() (err error) { episodes, err = s.repo.LoadEpisodes(ctx); return })
	load("podcast_clips", func() (err error) { clips, err = s.repo.LoadClips(ctx); return })
	load("week_configs", func() (err error) { weekConfigs, err = s.repo.LoadWeekConfigs(ctx); return })
	load("sprint_focuses", func() (err error) { focuses, err = s.repo.LoadActiveFocuses(ctx); return })
	wg.Wait()

	for _, p := range posts {
		snap.putPost(p)
	}
	for _, st := range stories {
		snap.putStories(st)
	}
	for _, n := range newsletters {
		snap.putNewsletter(n)
	}
	for _, t := range tasks {
		snap.putTask(t)
	}
	for _, e := range episodes {
		snap.putEpisode(e)
	}
	for _, c := range clips {
		snap.putClip(c)
	}
	for _, w := range weekConfigs {
		snap.putWeekConfig(w)
	}

	if len(focuses) == 0 {
		focuses = domain.DefaultSprintFocuses()
	}
	for _, f := range focuses {
		snap.putFocus(f)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	slog.InfoContext(ctx, "content snapshot loaded",
		"posts", len(posts),
		"stories", len(stories),
		"newsletters", len(newsletters),
		"tasks", len(tasks),
		"episodes", len(episodes),
		"clips", len(clips),
		"week_configs", len(weekConfigs),
		"focuses", len(focuses))
}

// === Posts and stories ===

// UpdatePost applies a partial update to the post at (date, platform),
// creating the record if needed.
func (s *Service) UpdatePost(ctx context.Context, date time.Time, platform domain.Platform, update domain.PostUpdate) (domain.Post, error) {
	if s.repo == nil {
		return domain.Post{}, domain.ErrNotConfigured
	}

	post := s.Snapshot().PostOrDefault(date, platform)
	if update.Done != nil {
		post.Done = *update.Done
	}
	if update.Link != nil {
		post.Link = *update.Link
	}
	if update.Caption != nil {
		post.Caption = *update.Caption
	}
	if update.CarouselLinks != nil {
		post.CarouselLinks = update.CarouselLinks
	}

	saved, err := s.repo.UpsertPost(ctx, post)
	if err != nil {
		return domain.Post{}, fmt.Errorf("upsert post: %w", err)
	}

	s.Snapshot().putPost(saved)
	s.notify()
	return saved, nil
}

// UpdateStories applies a partial update to a day's stories record.
func (s *Service) UpdateStories(ctx context.Context, date time.Time, update domain.StoriesUpdate) (domain.Stories, error) {
	if s.repo == nil {
		return domain.Stories{}, domain.ErrNotConfigured
	}

	stories := s.Snapshot().StoriesOrDefault(date)
	if update.Done != nil {
		stories.Done = *update.Done
	}
	if update.Notes != nil {
		stories.Notes = *update.Notes
	}

	saved, err := s.repo.UpsertStories(ctx, stories)
	if err != nil {
		return domain.Stories{}, fmt.Errorf("upsert stories: %w", err)
	}

	s.Snapshot().putStories(saved)
	s.notify()
	return saved, nil
}

// UpdateNewsletter applies a partial update to a newsletter issue.
func (s *Service) UpdateNewsletter(ctx context.Context, typ domain.NewsletterType, date time.Time, update domain.NewsletterUpdate) (domain.Newsletter, error) {
	if s.repo == nil {
		return domain.Newsletter{}, domain.ErrNotConfigured
	}

	issue := s.Snapshot().NewsletterOrDefault(typ, date)
	if update.Status != nil {
		issue.Status = *update.Status
	}
	if update.Link != nil {
		issue.Link = *update.Link
	}

	saved, err := s.repo.UpsertNewsletter(ctx, issue)
	if err != nil {
		return domain.Newsletter{}, fmt.Errorf("upsert newsletter: %w", err)
	}

	s.Snapshot().putNewsletter(saved)
	s.notify()
	return saved, nil
}

// === Tasks ===

// AddTask validates and creates a task. Status defaults to pending.
func (s *Service) AddTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	if s.repo == nil {
		return domain.Task{}, domain.ErrNotConfigured
	}

	title, err := domain.NewTitle(task.Title)
	if err != nil {
		return domain.Task{}, err
	}
	task.Title = title.String()

	if task.Tag, err = domain.NewTaskTag(task.Tag); err != nil {
		return domain.Task{}, err
	}
	if task.Status, err = domain.NewTaskStatus(string(task.Status)); err != nil {
		return domain.Task{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.Task{}, fmt.Errorf("generate task id: %w", err)
	}
	task.ID = id.String()
	task.CreatedAt = time.Now().UTC()

	saved, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.Snapshot().putTask(saved)
	s.notify()
	return saved, nil
}

// UpdateTask applies a partial update to a task.
func (s *Service) UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (domain.Task, error) {
	if s.repo == nil {
		return domain.Task{}, domain.ErrNotConfigured
	}

	if update.Title != nil {
		title, err := domain.NewTitle(*update.Title)
		if err != nil {
			return domain.Task{}, err
		}
		normalized := title.String()
		update.Title = &normalized
	}
	if update.Tag != nil {
		tag, err := domain.NewTaskTag(*update.Tag)
		if err != nil {
			return domain.Task{}, err
		}
		update.Tag = &tag
	}
	if update.Status != nil {
		status, err := domain.NewTaskStatus(string(*update.Status))
		if err != nil {
			return domain.Task{}, err
		}
		update.Status = &status
	}

	saved, err := s.repo.UpdateTask(ctx, id, update)
	if err != nil {
		return domain.Task{}, err
	}

	s.Snapshot().putTask(saved)
	s.notify()
	return saved, nil
}

// DeleteTask removes a task by id.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if s.repo == nil {
		return domain.ErrNotConfigured
	}

	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.Snapshot().removeTask(id)
	s.notify()
	return nil
}

// === Podcast ===

// AddEpisode validates and creates a podcast episode.
func (s *Service) AddEpisode(ctx context.Context, episode domain.PodcastEpisode) (domain.PodcastEpisode, error) {
	if s.repo == nil {
		return domain.PodcastEpisode{}, domain.ErrNotConfigured
	}

	title, err := domain.NewTitle(episode.Title)
	if err != nil {
		return domain.PodcastEpisode{}, err
	}
	episode.Title = title.String()

	if episode.Status, err = domain.NewContentStatus(string(episode.Status)); err != nil {
		return domain.PodcastEpisode{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.PodcastEpisode{}, fmt.Errorf("generate episode id: %w", err)
	}
	episode.ID = id.String()
	episode.CreatedAt = time.Now().UTC()

	saved, err := s.repo.CreateEpisode(ctx, episode)
	if err != nil {
		return domain.PodcastEpisode{}, fmt.Errorf("create episode: %w", err)
	}

	s.Snapshot().putEpisode(saved)
	s.notify()
	return saved, nil
}

// UpdateEpisode applies a partial update to an episode.
func (s *Service) UpdateEpisode(ctx context.Context, id string, update domain.EpisodeUpdate) (domain.PodcastEpisode, error) {
	if s.repo == nil {
		return domain.PodcastEpisode{}, domain.ErrNotConfigured
	}

	if update.Status != nil {
		status, err := domain.NewContentStatus(string(*update.Status))
		if err != nil {
			return domain.PodcastEpisode{}, err
		}
		update.Status = &status
	}

	saved, err := s.repo.UpdateEpisode(ctx, id, update)
	if err != nil {
		return domain.PodcastEpisode{}, err
	}

	s.Snapshot().putEpisode(saved)
	s.notify()
	return saved, nil
}

// AddClip validates and creates a podcast clip.
func (s *Service) AddClip(ctx context.Context, clip domain.PodcastClip) (domain.PodcastClip, error) {
	if s.repo == nil {
		return domain.PodcastClip{}, domain.ErrNotConfigured
	}

	title, err := domain.NewTitle(clip.Title)
	if err != nil {
		return domain.PodcastClip{}, err
	}
	clip.Title = title.String()

	id, err := uuid.NewV7()
	if err != nil {
		return domain.PodcastClip{}, fmt.Errorf("generate clip id: %w", err)
	}
	clip.ID = id.String()
	clip.CreatedAt = time.Now().UTC()

	saved, err := s.repo.CreateClip(ctx, clip)
	if err != nil {
		return domain.PodcastClip{}, fmt.Errorf("create clip: %w", err)
	}

	s.Snapshot().putClip(saved)
	s.notify()
	return saved, nil
}

// UpdateClip applies a partial update to a clip.
func (s *Service) UpdateClip(ctx context.Context, id string, update domain.ClipUpdate) (domain.PodcastClip, error) {
	if s.repo == nil {
		return domain.PodcastClip{}, domain.ErrNotConfigured
	}

	saved, err := s.repo.UpdateClip(ctx, id, update)
	if err != nil {
		return domain.PodcastClip{}, err
	}

	s.Snapshot().putClip(saved)
	s.notify()
	return saved, nil
}
