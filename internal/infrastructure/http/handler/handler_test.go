package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epicplan/planner/internal/application/planner"
	"github.com/epicplan/planner/internal/application/session"
	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/domain"
	"github.com/epicplan/planner/internal/infrastructure/http/handler"
)

const testPassword = "shared-password"

// memRepo is a minimal in-memory Repository for routing tests. Update
// methods mirror the partial semantics of the real store just enough for
// the endpoints under test.
type memRepo struct {
	mu          sync.Mutex
	posts       map[string]domain.Post
	stories     map[string]domain.Stories
	newsletters map[string]domain.Newsletter
	tasks       map[string]domain.Task
	episodes    map[string]domain.PodcastEpisode
	clips       map[string]domain.PodcastClip
	focuses     map[string]domain.SprintFocus
	weekConfigs map[string]domain.WeekConfig
	importDone  bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		posts:       map[string]domain.Post{},
		stories:     map[string]domain.Stories{},
		newsletters: map[string]domain.Newsletter{},
		tasks:       map[string]domain.Task{},
		episodes:    map[string]domain.PodcastEpisode{},
		clips:       map[string]domain.PodcastClip{},
		focuses:     map[string]domain.SprintFocus{},
		weekConfigs: map[string]domain.WeekConfig{},
	}
}

func (m *memRepo) LoadPosts(context.Context) ([]domain.Post, error)       { return nil, nil }
func (m *memRepo) LoadStories(context.Context) ([]domain.Stories, error)  { return nil, nil }
func (m *memRepo) LoadNewsletters(context.Context) ([]domain.Newsletter, error) {
	return nil, nil
}
func (m *memRepo) LoadTasks(context.Context) ([]domain.Task, error) { return nil, nil }
func (m *memRepo) LoadEpisodes(context.Context) ([]domain.PodcastEpisode, error) {
	return nil, nil
}
func (m *memRepo) LoadClips(context.Context) ([]domain.PodcastClip, error) { return nil, nil }
func (m *memRepo) LoadWeekConfigs(context.Context) ([]domain.WeekConfig, error) {
	return nil, nil
}
func (m *memRepo) LoadActiveFocuses(context.Context) ([]domain.SprintFocus, error) {
	return nil, nil
}

func (m *memRepo) UpsertPost(_ context.Context, post domain.Post) (domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[calendar.FormatDate(post.Date)+"|"+string(post.Platform)] = post
	return post, nil
}

func (m *memRepo) UpsertStories(_ context.Context, stories domain.Stories) (domain.Stories, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stories[calendar.FormatDate(stories.Date)] = stories
	return stories, nil
}

func (m *memRepo) UpsertNewsletter(_ context.Context, issue domain.Newsletter) (domain.Newsletter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newsletters[string(issue.Type)+"|"+calendar.FormatDate(issue.Date)] = issue
	return issue, nil
}

func (m *memRepo) CreateTask(_ context.Context, task domain.Task) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = task
	return task, nil
}

func (m *memRepo) UpdateTask(_ context.Context, id string, update domain.TaskUpdate) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if update.Title != nil {
		task.Title = *update.Title
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
	m.tasks[id] = task
	return task, nil
}

func (m *memRepo) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memRepo) CreateEpisode(_ context.Context, e domain.PodcastEpisode) (domain.PodcastEpisode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.episodes[e.ID] = e
	return e, nil
}

func (m *memRepo) UpdateEpisode(_ context.Context, id string, update domain.EpisodeUpdate) (domain.PodcastEpisode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.episodes[id]
	if !ok {
		return domain.PodcastEpisode{}, domain.ErrEpisodeNotFound
	}
	if update.Status != nil {
		e.Status = *update.Status
	}
	m.episodes[id] = e
	return e, nil
}

func (m *memRepo) CreateClip(_ context.Context, c domain.PodcastClip) (domain.PodcastClip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clips[c.ID] = c
	return c, nil
}

func (m *memRepo) UpdateClip(_ context.Context, id string, update domain.ClipUpdate) (domain.PodcastClip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clips[id]
	if !ok {
		return domain.PodcastClip{}, domain.ErrClipNotFound
	}
	if update.Title != nil {
		c.Title = *update.Title
	}
	m.clips[id] = c
	return c, nil
}

func (m *memRepo) CreateFocus(_ context.Context, f domain.SprintFocus) (domain.SprintFocus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.focuses[f.ID] = f
	return f, nil
}

func (m *memRepo) UpdateFocus(_ context.Context, id string, update domain.FocusUpdate) (domain.SprintFocus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.focuses[id]
	if !ok {
		return domain.SprintFocus{}, domain.ErrFocusNotFound
	}
	if update.Name != nil {
		f.Name = *update.Name
	}
	if update.Active != nil {
		f.Active = *update.Active
	}
	m.focuses[id] = f
	return f, nil
}

func (m *memRepo) DeactivateFocus(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.focuses[id]
	if !ok {
		return domain.ErrFocusNotFound
	}
	f.Active = false
	m.focuses[id] = f
	return nil
}

func (m *memRepo) setWeek(weekID string, apply func(*domain.WeekConfig)) domain.WeekConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.weekConfigs[weekID]
	if !ok {
		cfg = domain.WeekConfig{WeekID: weekID}
	}
	apply(&cfg)
	m.weekConfigs[weekID] = cfg
	return cfg
}

func (m *memRepo) SetWeekFocus(_ context.Context, weekID string, focusID *string) (domain.WeekConfig, error) {
	return m.setWeek(weekID, func(cfg *domain.WeekConfig) { cfg.FocusID = focusID }), nil
}

func (m *memRepo) SetWeekLandingPage(_ context.Context, weekID, url string) (domain.WeekConfig, error) {
	return m.setWeek(weekID, func(cfg *domain.WeekConfig) {
		if url == "" {
			cfg.LandingPageURL = nil
		} else {
			cfg.LandingPageURL = &url
		}
	}), nil
}

func (m *memRepo) SetWeekOfferPage(_ context.Context, weekID, url string) (domain.WeekConfig, error) {
	return m.setWeek(weekID, func(cfg *domain.WeekConfig) {
		if url == "" {
			cfg.OfferPageURL = nil
		} else {
			cfg.OfferPageURL = &url
		}
	}), nil
}

func (m *memRepo) SetWeekCTA(_ context.Context, weekID string, isCTA bool) (domain.WeekConfig, error) {
	return m.setWeek(weekID, func(cfg *domain.WeekConfig) { cfg.IsCTAWeek = isCTA }), nil
}

func (m *memRepo) LegacyImportDone(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importDone, nil
}

func (m *memRepo) MarkLegacyImportDone(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importDone = true
	return nil
}

var _ planner.Repository = (*memRepo)(nil)

// === Test harness ===

type api struct {
	router http.Handler
	token  string
}

func newAPI(t *testing.T, svc *planner.Service) *api {
	t.Helper()

	gate, err := session.NewGate(testPassword, session.DefaultTTL)
	require.NoError(t, err)

	a := &api{router: handler.NewRouter(svc, gate)}

	sess, err := gate.Login(context.Background(), testPassword)
	require.NoError(t, err)
	a.token = sess.Token
	return a
}

func newWritableAPI(t *testing.T) *api {
	t.Helper()
	svc := planner.NewService(newMemRepo(), planner.Config{})
	svc.Load(context.Background())
	return newAPI(t, svc)
}

func (a *api) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	r := httptest.NewRequest(method, path, reader)
	if a.token != "" {
		r.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, r)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

// === Session ===

func TestLoginEndpoint(t *testing.T) {
	a := newWritableAPI(t)
	a.token = "" // login is the open route

	w := a.do(t, http.MethodPost, "/session", map[string]string{"password": testPassword})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody[struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expiresAt"`
	}](t, w)
	assert.NotEmpty(t, body.Token)

	expires, err := time.Parse(time.RFC3339, body.ExpiresAt)
	require.NoError(t, err)
	assert.True(t, expires.After(time.Now()))
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	a := newWritableAPI(t)
	a.token = ""

	w := a.do(t, http.MethodPost, "/session", map[string]string{"password": "guess"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGatedRoutes_RequireToken(t *testing.T) {
	a := newWritableAPI(t)
	a.token = ""

	for _, path := range []string{"/calendar", "/tasks", "/podcast", "/focuses", "/analytics"} {
		w := a.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}
}

func TestLogoutEndpoint(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodDelete, "/session", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// The token is dead from here on.
	w = a.do(t, http.MethodGet, "/calendar", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// === Calendar ===

func TestGetCalendar_DefaultWindow(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodGet, "/calendar", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[struct {
		Weeks []handler.WeekDTO `json:"weeks"`
	}](t, w)

	require.Len(t, body.Weeks, 9) // 4 before + centre + 4 after
	for _, week := range body.Weeks {
		assert.Len(t, week.Days, 7)
		assert.NotEmpty(t, week.ID)
	}
}

func TestGetCalendar_WindowOutOfRange(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodGet, "/calendar?before=60&after=60", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDay(t *testing.T) {
	a := newWritableAPI(t)

	// Tuesday carries the business-lunch slot.
	w := a.do(t, http.MethodPut, "/posts/2024-10-08/instagram", map[string]any{"done": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/days/2024-10-08", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[struct {
		Day   handler.DayDTO    `json:"day"`
		Posts []handler.PostDTO `json:"posts"`
	}](t, w)

	assert.Equal(t, "2024-10-08", body.Day.Date)
	require.Len(t, body.Posts, 4)
	assert.True(t, body.Posts[0].Done, "instagram post should reflect the write")
	assert.False(t, body.Day.AllComplete)
}

func TestGetDay_InvalidDate(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodGet, "/days/yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// === Content writes ===

func TestPutPost_RoundTrip(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodPut, "/posts/2024-10-07/linkedin", map[string]any{
		"done":    true,
		"link":    "https://linkedin.com/feed/xyz",
		"caption": "monday insight",
	})
	require.Equal(t, http.StatusOK, w.Code)

	post := decodeBody[handler.PostDTO](t, w)
	assert.Equal(t, "2024-10-07", post.Date)
	assert.Equal(t, "linkedin", post.Platform)
	assert.True(t, post.Done)
	assert.Equal(t, "monday insight", post.Caption)
	assert.NotNil(t, post.CarouselLinks)
}

func TestPutPost_UnknownPlatform(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodPut, "/posts/2024-10-07/tiktok", map[string]any{"done": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPutPost_ReadOnlyMode(t *testing.T) {
	a := newAPI(t, planner.NewReadOnlyService(planner.Config{}))

	w := a.do(t, http.MethodPut, "/posts/2024-10-07/instagram", map[string]any{"done": true})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	body := decodeBody[struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}](t, w)
	assert.Equal(t, "READ_ONLY", body.Error.Code)
}

func TestPutNewsletter_UnknownType(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodPut, "/newsletters/weekly-digest/2024-10-11", map[string]any{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// === Tasks ===

func TestTaskLifecycle(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodPost, "/tasks", map[string]any{
		"title": "Prepare board deck",
		"tag":   "presentation",
		"date":  "2024-10-09",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	task := decodeBody[handler.TaskDTO](t, w)
	require.NotEmpty(t, task.ID)
	require.NotNil(t, task.Date)
	assert.Equal(t, "2024-10-09", *task.Date)
	assert.Equal(t, "pending", task.Status)

	// Clearing the date through an explicit empty string.
	w = a.do(t, http.MethodPatch, "/tasks/"+task.ID, map[string]any{"date": ""})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[handler.TaskDTO](t, w)
	assert.Nil(t, updated.Date)

	w = a.do(t, http.MethodDelete, "/tasks/"+task.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(t, http.MethodPatch, "/tasks/"+task.ID, map[string]any{"title": "gone"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTask_InvalidTag(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodPost, "/tasks", map[string]any{"title": "x", "tag": "chores"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// === Weeks ===

func TestWeekConfiguration(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodPut, "/weeks/2024-W41/cta", map[string]any{"isCtaWeek": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPut, "/weeks/2024-W41/landing-page", map[string]any{"url": "example.com/launch"})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/weeks/2024-W41", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[struct {
		WeekID string                 `json:"weekId"`
		Kind   string                 `json:"kind"`
		Config *handler.WeekConfigDTO `json:"config"`
	}](t, w)

	assert.Equal(t, "2024-W41", body.WeekID)
	assert.Equal(t, "cta-content", body.Kind)
	require.NotNil(t, body.Config)
	assert.True(t, body.Config.IsCTAWeek)
	require.NotNil(t, body.Config.LandingPageURL)
	assert.Equal(t, "https://example.com/launch", *body.Config.LandingPageURL)
}

func TestPutWeekFocus_UnknownFocus(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodPut, "/weeks/2024-W41/focus", map[string]any{"focusId": "no-such-focus"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetWeek_InvalidID(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodGet, "/weeks/next-week", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// === Analytics ===

func TestGetAnalytics(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodPut, "/posts/2024-11-04/instagram", map[string]any{"done": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/analytics?month=2024-11", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[map[string]any](t, w)
	assert.Equal(t, "2024-11", body["month"])
	assert.Contains(t, body, "platforms")
	assert.Contains(t, body, "tagDistribution")
}

func TestGetAnalytics_BadMonth(t *testing.T) {
	a := newWritableAPI(t)

	w := a.do(t, http.MethodGet, "/analytics?month=November", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// === Legacy import ===

func TestImportLegacyEndpoint(t *testing.T) {
	a := newWritableAPI(t)

	blob := map[string]any{
		"posts": map[string]any{
			"2024-10-07": map[string]any{
				"instagram": map[string]any{"done": true},
			},
		},
	}

	w := a.do(t, http.MethodPost, "/import/legacy", blob)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[struct {
		Migrated int      `json:"migrated"`
		Errors   []string `json:"errors"`
	}](t, w)
	assert.Equal(t, 1, body.Migrated)
	assert.NotNil(t, body.Errors)

	// Second run conflicts.
	w = a.do(t, http.MethodPost, "/import/legacy", blob)
	assert.Equal(t, http.StatusConflict, w.Code)
}
