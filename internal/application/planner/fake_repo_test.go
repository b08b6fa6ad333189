package planner_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/domain"
)

// fakeRepo is an in-memory Repository with the same partial-update
// semantics as the postgres store. Per-collection load errors can be
// injected through loadErrs.
type fakeRepo struct {
	mu sync.Mutex

	posts       map[string]domain.Post
	stories     map[string]domain.Stories
	newsletters map[string]domain.Newsletter
	tasks       map[string]domain.Task
	episodes    map[string]domain.PodcastEpisode
	clips       map[string]domain.PodcastClip
	focuses     map[string]domain.SprintFocus
	weekConfigs map[string]domain.WeekConfig
	importDone  bool

	loadErrs map[string]error // collection name -> injected error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		posts:       make(map[string]domain.Post),
		stories:     make(map[string]domain.Stories),
		newsletters: make(map[string]domain.Newsletter),
		tasks:       make(map[string]domain.Task),
		episodes:    make(map[string]domain.PodcastEpisode),
		clips:       make(map[string]domain.PodcastClip),
		focuses:     make(map[string]domain.SprintFocus),
		weekConfigs: make(map[string]domain.WeekConfig),
		loadErrs:    make(map[string]error),
	}
}

func postKey(date time.Time, platform domain.Platform) string {
	return calendar.FormatDate(date) + "|" + string(platform)
}

func newsletterKey(typ domain.NewsletterType, date time.Time) string {
	return string(typ) + "|" + calendar.FormatDate(date)
}

func (f *fakeRepo) LoadPosts(ctx context.Context) ([]domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadErrs["posts"]; err != nil {
		return nil, err
	}
	var out []domain.Post
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) LoadStories(ctx context.Context) ([]domain.Stories, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadErrs["stories"]; err != nil {
		return nil, err
	}
	var out []domain.Stories
	for _, s := range f.stories {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) LoadNewsletters(ctx context.Context) ([]domain.Newsletter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadErrs["newsletters"]; err != nil {
		return nil, err
	}
	var out []domain.Newsletter
	for _, n := range f.newsletters {
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeRepo) LoadTasks(ctx context.Context) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadErrs["tasks"]; err != nil {
		return nil, err
	}
	var out []domain.Task
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRepo) LoadEpisodes(ctx context.Context) ([]domain.PodcastEpisode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadErrs["episodes"]; err != nil {
		return nil, err
	}
	var out []domain.PodcastEpisode
	for _, e := range f.episodes {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeRepo) LoadClips(ctx context.Context) ([]domain.PodcastClip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadErrs["clips"]; err != nil {
		return nil, err
	}
	var out []domain.PodcastClip
	for _, c := range f.clips {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepo) LoadWeekConfigs(ctx context.Context) ([]domain.WeekConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadErrs["week_configs"]; err != nil {
		return nil, err
	}
	var out []domain.WeekConfig
	for _, w := range f.weekConfigs {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeRepo) LoadActiveFocuses(ctx context.Context) ([]domain.SprintFocus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadErrs["focuses"]; err != nil {
		return nil, err
	}
	var out []domain.SprintFocus
	for _, focus := range f.focuses {
		if focus.Active {
			out = append(out, focus)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpsertPost(ctx context.Context, post domain.Post) (domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.UpdatedAt = time.Now().UTC()
	f.posts[postKey(post.Date, post.Platform)] = post
	return post, nil
}

func (f *fakeRepo) UpsertStories(ctx context.Context, stories domain.Stories) (domain.Stories, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stories.UpdatedAt = time.Now().UTC()
	f.stories[calendar.FormatDate(stories.Date)] = stories
	return stories, nil
}

func (f *fakeRepo) UpsertNewsletter(ctx context.Context, issue domain.Newsletter) (domain.Newsletter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue.UpdatedAt = time.Now().UTC()
	f.newsletters[newsletterKey(issue.Type, issue.Date)] = issue
	return issue, nil
}

func (f *fakeRepo) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeRepo) UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Tag != nil {
		task.Tag = *update.Tag
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	switch {
	case update.ClearDate:
		task.Date = nil
	case update.Date != nil:
		task.Date = update.Date
	}
	task.UpdatedAt = time.Now().UTC()
	f.tasks[id] = task
	return task, nil
}

func (f *fakeRepo) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeRepo) CreateEpisode(ctx context.Context, episode domain.PodcastEpisode) (domain.PodcastEpisode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.episodes[episode.ID] = episode
	return episode, nil
}

func (f *fakeRepo) UpdateEpisode(ctx context.Context, id string, update domain.EpisodeUpdate) (domain.PodcastEpisode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	episode, ok := f.episodes[id]
	if !ok {
		return domain.PodcastEpisode{}, domain.ErrEpisodeNotFound
	}
	if update.Title != nil {
		episode.Title = *update.Title
	}
	if update.CaptivateLink != nil {
		episode.CaptivateLink = *update.CaptivateLink
	}
	if update.YouTubeLink != nil {
		episode.YouTubeLink = *update.YouTubeLink
	}
	if update.ShowNotes != nil {
		episode.ShowNotes = *update.ShowNotes
	}
	if update.Status != nil {
		episode.Status = *update.Status
	}
	if update.Date != nil {
		episode.Date = update.Date
	}
	episode.UpdatedAt = time.Now().UTC()
	f.episodes[id] = episode
	return episode, nil
}

func (f *fakeRepo) CreateClip(ctx context.Context, clip domain.PodcastClip) (domain.PodcastClip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clips[clip.ID] = clip
	return clip, nil
}

func (f *fakeRepo) UpdateClip(ctx context.Context, id string, update domain.ClipUpdate) (domain.PodcastClip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	clip, ok := f.clips[id]
	if !ok {
		return domain.PodcastClip{}, domain.ErrClipNotFound
	}
	if update.Title != nil {
		clip.Title = *update.Title
	}
	if update.CaptivateLink != nil {
		clip.CaptivateLink = *update.CaptivateLink
	}
	if update.YouTubeLink != nil {
		clip.YouTubeLink = *update.YouTubeLink
	}
	if update.Date != nil {
		clip.Date = update.Date
	}
	clip.UpdatedAt = time.Now().UTC()
	f.clips[id] = clip
	return clip, nil
}

func (f *fakeRepo) CreateFocus(ctx context.Context, focus domain.SprintFocus) (domain.SprintFocus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.focuses[focus.ID]; exists {
		return domain.SprintFocus{}, fmt.Errorf("focus %s already exists", focus.ID)
	}
	f.focuses[focus.ID] = focus
	return focus, nil
}

func (f *fakeRepo) UpdateFocus(ctx context.Context, id string, update domain.FocusUpdate) (domain.SprintFocus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	focus, ok := f.focuses[id]
	if !ok {
		return domain.SprintFocus{}, domain.ErrFocusNotFound
	}
	if update.Name != nil {
		focus.Name = *update.Name
	}
	if update.Description != nil {
		focus.Description = *update.Description
	}
	if update.Color != nil {
		focus.Color = *update.Color
	}
	if update.Products != nil {
		focus.Products = update.Products
	}
	if update.Active != nil {
		focus.Active = *update.Active
	}
	focus.UpdatedAt = time.Now().UTC()
	f.focuses[id] = focus
	return focus, nil
}

func (f *fakeRepo) DeactivateFocus(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	focus, ok := f.focuses[id]
	if !ok {
		return domain.ErrFocusNotFound
	}
	focus.Active = false
	f.focuses[id] = focus
	return nil
}

func (f *fakeRepo) setWeekColumn(weekID string, apply func(*domain.WeekConfig)) domain.WeekConfig {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfg, ok := f.weekConfigs[weekID]
	if !ok {
		cfg = domain.WeekConfig{WeekID: weekID}
	}
	apply(&cfg)
	cfg.UpdatedAt = time.Now().UTC()
	f.weekConfigs[weekID] = cfg
	return cfg
}

func (f *fakeRepo) SetWeekFocus(ctx context.Context, weekID string, focusID *string) (domain.WeekConfig, error) {
	return f.setWeekColumn(weekID, func(cfg *domain.WeekConfig) { cfg.FocusID = focusID }), nil
}

func (f *fakeRepo) SetWeekLandingPage(ctx context.Context, weekID, url string) (domain.WeekConfig, error) {
	return f.setWeekColumn(weekID, func(cfg *domain.WeekConfig) {
		if url == "" {
			cfg.LandingPageURL = nil
		} else {
			cfg.LandingPageURL = &url
		}
	}), nil
}

func (f *fakeRepo) SetWeekOfferPage(ctx context.Context, weekID, url string) (domain.WeekConfig, error) {
	return f.setWeekColumn(weekID, func(cfg *domain.WeekConfig) {
		if url == "" {
			cfg.OfferPageURL = nil
		} else {
			cfg.OfferPageURL = &url
		}
	}), nil
}

func (f *fakeRepo) SetWeekCTA(ctx context.Context, weekID string, isCTA bool) (domain.WeekConfig, error) {
	return f.setWeekColumn(weekID, func(cfg *domain.WeekConfig) { cfg.IsCTAWeek = isCTA }), nil
}

func (f *fakeRepo) LegacyImportDone(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.importDone, nil
}

func (f *fakeRepo) MarkLegacyImportDone(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.importDone = true
	return nil
}
