package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/domain"
)

// The legacy dashboard persisted its entire data model as one JSON blob
// in browser local storage. These types mirror that blob so the one-time
// import can decompose it into per-entity upserts.

type legacyPost struct {
	Done    bool   `json:"done"`
	Link    string `json:"link"`
	Caption string `json:"caption"`
	Notes   string `json:"notes"` // stories records reuse the post shape
}

type legacyNewsletter struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Link   string `json:"link"`
}

type legacyTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	CreatedAt   string `json:"createdAt"`
}

type legacyEpisode struct {
	Title         string `json:"title"`
	CaptivateLink string `json:"captivateLink"`
	YouTubeLink   string `json:"youtubeLink"`
	ShowNotes     string `json:"showNotes"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	CreatedAt     string `json:"createdAt"`
}

type legacyClip struct {
	Title         string `json:"title"`
	CaptivateLink string `json:"captivateLink"`
	YouTubeLink   string `json:"youtubeLink"`
	Date          string `json:"date"`
	CreatedAt     string `json:"createdAt"`
}

type legacyFocus struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Products    []string `json:"products"`
	Active      *bool    `json:"active"`
}

type legacySnapshot struct {
	Posts       map[string]map[string]legacyPost `json:"posts"`
	Newsletters map[string][]legacyNewsletter    `json:"newsletters"`
	Tasks       []legacyTask                     `json:"tasks"`
	Podcast     struct {
		Episodes []legacyEpisode `json:"episodes"`
		Clips    []legacyClip    `json:"clips"`
	} `json:"podcast"`
	SprintFocuses    []legacyFocus     `json:"sprintFocuses"`
	SprintSchedule   map[string]string `json:"sprintSchedule"`
	WeekLandingPages map[string]string `json:"weekLandingPages"`
	WeekOfferPages   map[string]string `json:"weekOfferPages"`
	CTAWeeks         map[string]bool   `json:"ctaWeeks"`
}

// ImportResult summarizes a legacy import run.
type ImportResult struct {
	Migrated int
	Errors   []string
}

// ImportLegacy reads a legacy local-storage blob and decomposes it into
// the per-entity upserts of the current store. Per-item failures are
// collected, not fatal. On completion a marker is written so the import
// can never run twice; a second call returns domain.ErrMigrationDone.
func (s *Service) ImportLegacy(ctx context.Context, r io.Reader) (*ImportResult, error) {
	if s.repo == nil {
		return nil, domain.ErrNotConfigured
	}

	done, err := s.repo.LegacyImportDone(ctx)
	if err != nil {
		return nil, fmt.Errorf("check import marker: %w", err)
	}
	if done {
		return nil, domain.ErrMigrationDone
	}

	var blob legacySnapshot
	if err := json.NewDecoder(r).Decode(&blob); err != nil {
		return nil, fmt.Errorf("decode legacy snapshot: %w", err)
	}

	result := &ImportResult{}
	fail := func(what string, err error) {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", what, err))
	}

	for dateStr, byPlatform := range blob.Posts {
		date, err := calendar.ParseDate(dateStr)
		if err != nil {
			fail("post day "+dateStr, err)
			continue
		}

		for platformStr, p := range byPlatform {
			// The legacy blob stored the stories record as a pseudo-platform
			// under the same date key.
			if platformStr == "stories" {
				if _, err := s.repo.UpsertStories(ctx, domain.Stories{
					Date:  date,
					Done:  p.Done,
					Notes: p.Notes,
				}); err != nil {
					fail("stories "+dateStr, err)
					continue
				}
				result.Migrated++
				continue
			}

			platform, err := domain.NewPlatform(platformStr)
			if err != nil {
				fail("post "+dateStr+"/"+platformStr, err)
				continue
			}
			if _, err := s.repo.UpsertPost(ctx, domain.Post{
				Date:     date,
				Platform: platform,
				Done:     p.Done,
				Link:     p.Link,
				Caption:  p.Caption,
			}); err != nil {
				fail("post "+dateStr+"/"+platformStr, err)
				continue
			}
			result.Migrated++
		}
	}

	for typStr, issues := range blob.Newsletters {
		typ, err := domain.NewNewsletterType(typStr)
		if err != nil {
			fail("newsletter type "+typStr, err)
			continue
		}
		for _, issue := range issues {
			date, err := calendar.ParseDate(issue.Date)
			if err != nil {
				fail("newsletter "+typStr+"/"+issue.Date, err)
				continue
			}
			status, err := domain.NewContentStatus(issue.Status)
			if err != nil {
				fail("newsletter "+typStr+"/"+issue.Date, err)
				continue
			}
			if _, err := s.repo.UpsertNewsletter(ctx, domain.Newsletter{
				Type:   typ,
				Date:   date,
				Status: status,
				Link:   issue.Link,
			}); err != nil {
				fail("newsletter "+typStr+"/"+issue.Date, err)
				continue
			}
			result.Migrated++
		}
	}

	for _, t := range blob.Tasks {
		task, err := legacyTaskToDomain(t)
		if err != nil {
			fail("task "+t.Title, err)
			continue
		}
		if _, err := s.repo.CreateTask(ctx, task); err != nil {
			fail("task "+t.Title, err)
			continue
		}
		result.Migrated++
	}

	for _, e := range blob.Podcast.Episodes {
		episode, err := legacyEpisodeToDomain(e)
		if err != nil {
			fail("episode "+e.Title, err)
			continue
		}
		if _, err := s.repo.CreateEpisode(ctx, episode); err != nil {
			fail("episode "+e.Title, err)
			continue
		}
		result.Migrated++
	}

	for _, c := range blob.Podcast.Clips {
		clip, err := legacyClipToDomain(c)
		if err != nil {
			fail("clip "+c.Title, err)
			continue
		}
		if _, err := s.repo.CreateClip(ctx, clip); err != nil {
			fail("clip "+c.Title, err)
			continue
		}
		result.Migrated++
	}

	// Only custom focuses migrate; defaults are seeded by the schema.
	for _, f := range blob.SprintFocuses {
		if !strings.HasPrefix(f.ID, domain.CustomFocusPrefix) {
			continue
		}
		active := f.Active == nil || *f.Active
		if _, err := s.repo.CreateFocus(ctx, domain.SprintFocus{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			Color:       f.Color,
			Products:    f.Products,
			Active:      active,
			IsCustom:    true,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			fail("focus "+f.Name, err)
			continue
		}
		result.Migrated++
	}

	for weekID := range weekIDs(blob) {
		if focusID, ok := blob.SprintSchedule[weekID]; ok && focusID != "" {
			if _, err := s.repo.SetWeekFocus(ctx, weekID, &focusID); err != nil {
				fail("week focus "+weekID, err)
			} else {
				result.Migrated++
			}
		}
		if url, ok := blob.WeekLandingPages[weekID]; ok && url != "" {
			if _, err := s.repo.SetWeekLandingPage(ctx, weekID, domain.NormalizeURL(url)); err != nil {
				fail("week landing page "+weekID, err)
			} else {
				result.Migrated++
			}
		}
		if url, ok := blob.WeekOfferPages[weekID]; ok && url != "" {
			if _, err := s.repo.SetWeekOfferPage(ctx, weekID, domain.NormalizeURL(url)); err != nil {
				fail("week offer page "+weekID, err)
			} else {
				result.Migrated++
			}
		}
		if flagged, ok := blob.CTAWeeks[weekID]; ok && flagged {
			if _, err := s.repo.SetWeekCTA(ctx, weekID, true); err != nil {
				fail("week cta flag "+weekID, err)
			} else {
				result.Migrated++
			}
		}
	}

	if err := s.repo.MarkLegacyImportDone(ctx); err != nil {
		return result, fmt.Errorf("mark import done: %w", err)
	}

	slog.InfoContext(ctx, "legacy import complete",
		"migrated", result.Migrated,
		"errors", len(result.Errors))
	return result, nil
}

// weekIDs collects every week id mentioned anywhere in the blob's four
// week-keyed maps.
func weekIDs(blob legacySnapshot) map[string]struct{} {
	ids := make(map[string]struct{})
	for id := range blob.SprintSchedule {
		ids[id] = struct{}{}
	}
	for id := range blob.WeekLandingPages {
		ids[id] = struct{}{}
	}
	for id := range blob.WeekOfferPages {
		ids[id] = struct{}{}
	}
	for id := range blob.CTAWeeks {
		ids[id] = struct{}{}
	}
	return ids
}

func legacyTaskToDomain(t legacyTask) (domain.Task, error) {
	// Legacy ids were local timestamps; new ids are generated.
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Task{}, fmt.Errorf("generate task id: %w", err)
	}

	status, err := domain.NewTaskStatus(t.Status)
	if err != nil {
		return domain.Task{}, err
	}
	tag, err := domain.NewTaskTag(t.Tag)
	if err != nil {
		return domain.Task{}, err
	}
	title, err := domain.NewTitle(t.Title)
	if err != nil {
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:          id.String(),
		Title:       title.String(),
		Description: t.Description,
		Tag:         tag,
		Status:      status,
		CreatedAt:   parseLegacyTimestamp(t.CreatedAt),
	}
	if t.Date != "" {
		date, err := calendar.ParseDate(t.Date)
		if err != nil {
			return domain.Task{}, err
		}
		task.Date = &date
	}
	return task, nil
}

func legacyEpisodeToDomain(e legacyEpisode) (domain.PodcastEpisode, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.PodcastEpisode{}, fmt.Errorf("generate episode id: %w", err)
	}

	status, err := domain.NewContentStatus(e.Status)
	if err != nil {
		return domain.PodcastEpisode{}, err
	}
	title, err := domain.NewTitle(e.Title)
	if err != nil {
		return domain.PodcastEpisode{}, err
	}

	episode := domain.PodcastEpisode{
		ID:            id.String(),
		Title:         title.String(),
		CaptivateLink: e.CaptivateLink,
		YouTubeLink:   e.YouTubeLink,
		ShowNotes:     e.ShowNotes,
		Status:        status,
		CreatedAt:     parseLegacyTimestamp(e.CreatedAt),
	}
	if e.Date != "" {
		date, err := calendar.ParseDate(e.Date)
		if err != nil {
			return domain.PodcastEpisode{}, err
		}
		episode.Date = &date
	}
	return episode, nil
}

func legacyClipToDomain(c legacyClip) (domain.PodcastClip, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.PodcastClip{}, fmt.Errorf("generate clip id: %w", err)
	}

	title, err := domain.NewTitle(c.Title)
	if err != nil {
		return domain.PodcastClip{}, err
	}

	clip := domain.PodcastClip{
		ID:            id.String(),
		Title:         title.String(),
		CaptivateLink: c.CaptivateLink,
		YouTubeLink:   c.YouTubeLink,
		CreatedAt:     parseLegacyTimestamp(c.CreatedAt),
	}
	if c.Date != "" {
		date, err := calendar.ParseDate(c.Date)
		if err != nil {
			return domain.PodcastClip{}, err
		}
		clip.Date = &date
	}
	return clip, nil
}

// parseLegacyTimestamp best-efforts an RFC3339 createdAt; missing or
// malformed values fall back to the import time.
func parseLegacyTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
