package planner

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/domain"
)

// Snapshot is the in-memory view of all persisted content. The facade
// mutates it only after a successful write, which is what gives callers
// read-after-write consistency without re-querying.
//
// Snapshot implements completion.ContentSource.
type Snapshot struct {
	mu sync.RWMutex

	posts       map[string]map[domain.Platform]domain.Post // date key -> platform -> post
	stories     map[string]domain.Stories
	newsletters map[domain.NewsletterType]map[string]domain.Newsletter
	tasks       map[string]domain.Task
	episodes    map[string]domain.PodcastEpisode
	clips       map[string]domain.PodcastClip
	focuses     map[string]domain.SprintFocus
	weekConfigs map[string]domain.WeekConfig
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		posts:   make(map[string]map[domain.Platform]domain.Post),
		stories: make(map[string]domain.Stories),
		newsletters: map[domain.NewsletterType]map[string]domain.Newsletter{
			domain.NewsletterRolandsRiff:      {},
			domain.NewsletterCrazyExperiments: {},
		},
		tasks:       make(map[string]domain.Task),
		episodes:    make(map[string]domain.PodcastEpisode),
		clips:       make(map[string]domain.PodcastClip),
		focuses:     make(map[string]domain.SprintFocus),
		weekConfigs: make(map[string]domain.WeekConfig),
	}
}

// === completion.ContentSource ===

// Post returns the post for (date, platform), reporting whether one exists.
func (s *Snapshot) Post(date time.Time, platform domain.Platform) (domain.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[calendar.FormatDate(date)][platform]
	return post, ok
}

// Stories returns the stories record for a date.
func (s *Snapshot) Stories(date time.Time) (domain.Stories, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stories, ok := s.stories[calendar.FormatDate(date)]
	return stories, ok
}

// Newsletter returns the newsletter issue for (type, date).
func (s *Snapshot) Newsletter(typ domain.NewsletterType, date time.Time) (domain.Newsletter, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	issue, ok := s.newsletters[typ][calendar.FormatDate(date)]
	return issue, ok
}

// === Read accessors with dashboard defaults ===

// PostOrDefault returns the post for (date, platform), or a zero-state
// post (not done, empty link and caption) when none is stored.
func (s *Snapshot) PostOrDefault(date time.Time, platform domain.Platform) domain.Post {
	if post, ok := s.Post(date, platform); ok {
		return post
	}
	return domain.Post{Date: calendar.DateOf(date), Platform: platform}
}

// StoriesOrDefault returns the stories record for a date, or a not-done default.
func (s *Snapshot) StoriesOrDefault(date time.Time) domain.Stories {
	if stories, ok := s.Stories(date); ok {
		return stories
	}
	return domain.Stories{Date: calendar.DateOf(date)}
}

// NewsletterOrDefault returns the issue for (type, date), or a pending default.
func (s *Snapshot) NewsletterOrDefault(typ domain.NewsletterType, date time.Time) domain.Newsletter {
	if issue, ok := s.Newsletter(typ, date); ok {
		return issue
	}
	return domain.Newsletter{Type: typ, Date: calendar.DateOf(date), Status: domain.ContentStatusPending}
}

// Task returns a task by id.
func (s *Snapshot) Task(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	return task, ok
}

// TaskFilter narrows Tasks; zero value matches everything.
type TaskFilter struct {
	Date *time.Time
	Tag  string
}

// Tasks lists tasks matching the filter, newest first.
func (s *Snapshot) Tasks(filter TaskFilter) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []domain.Task
	for _, task := range s.tasks {
		if filter.Date != nil {
			if task.Date == nil || !calendar.DateOf(*task.Date).Equal(calendar.DateOf(*filter.Date)) {
				continue
			}
		}
		if filter.Tag != "" && task.Tag != filter.Tag {
			continue
		}
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID > tasks[j].ID
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks
}

// AllTasks lists every task, newest first.
func (s *Snapshot) AllTasks() []domain.Task {
	return s.Tasks(TaskFilter{})
}

// Episodes lists podcast episodes, newest first.
func (s *Snapshot) Episodes() []domain.PodcastEpisode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	episodes := make([]domain.PodcastEpisode, 0, len(s.episodes))
	for _, e := range s.episodes {
		episodes = append(episodes, e)
	}
	sort.Slice(episodes, func(i, j int) bool {
		if episodes[i].CreatedAt.Equal(episodes[j].CreatedAt) {
			return episodes[i].ID > episodes[j].ID
		}
		return episodes[i].CreatedAt.After(episodes[j].CreatedAt)
	})
	return episodes
}

// Clips lists podcast clips, newest first.
func (s *Snapshot) Clips() []domain.PodcastClip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clips := make([]domain.PodcastClip, 0, len(s.clips))
	for _, c := range s.clips {
		clips = append(clips, c)
	}
	sort.Slice(clips, func(i, j int) bool {
		if clips[i].CreatedAt.Equal(clips[j].CreatedAt) {
			return clips[i].ID > clips[j].ID
		}
		return clips[i].CreatedAt.After(clips[j].CreatedAt)
	})
	return clips
}

// Focus returns an active sprint focus by id.
func (s *Snapshot) Focus(id string) (domain.SprintFocus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	focus, ok := s.focuses[id]
	return focus, ok
}

// Focuses lists active sprint focuses, defaults before custom ones, each
// group sorted by name.
func (s *Snapshot) Focuses() []domain.SprintFocus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	focuses := make([]domain.SprintFocus, 0, len(s.focuses))
	for _, f := range s.focuses {
		focuses = append(focuses, f)
	}
	slices.SortFunc(focuses, func(a, b domain.SprintFocus) int {
		if a.IsCustom != b.IsCustom {
			if a.IsCustom {
				return 1
			}
			return -1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return focuses
}

// WeekConfig returns the stored configuration for a week id; ok is false
// when the week has never been configured.
func (s *Snapshot) WeekConfig(weekID string) (domain.WeekConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.weekConfigs[weekID]
	return cfg, ok
}

// === Mutators (called by the service after successful writes) ===

func (s *Snapshot) putPost(post domain.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := calendar.FormatDate(post.Date)
	if s.posts[key] == nil {
		s.posts[key] = make(map[domain.Platform]domain.Post)
	}
	s.posts[key][post.Platform] = post
}

func (s *Snapshot) putStories(stories domain.Stories) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stories[calendar.FormatDate(stories.Date)] = stories
}

func (s *Snapshot) putNewsletter(issue domain.Newsletter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.newsletters[issue.Type] == nil {
		s.newsletters[issue.Type] = make(map[string]domain.Newsletter)
	}
	s.newsletters[issue.Type][calendar.FormatDate(issue.Date)] = issue
}

func (s *Snapshot) putTask(task domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = task
}

func (s *Snapshot) removeTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, id)
}

func (s *Snapshot) putEpisode(episode domain.PodcastEpisode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.episodes[episode.ID] = episode
}

func (s *Snapshot) putClip(clip domain.PodcastClip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clips[clip.ID] = clip
}

func (s *Snapshot) putFocus(focus domain.SprintFocus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.focuses[focus.ID] = focus
}

func (s *Snapshot) removeFocus(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.focuses, id)
}

func (s *Snapshot) putWeekConfig(cfg domain.WeekConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.weekConfigs[cfg.WeekID] = cfg
}
