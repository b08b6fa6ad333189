package handler

import (
	"time"

	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/completion"
	"github.com/epicplan/planner/internal/domain"
)

// DTOs mirror the JSON shapes the dashboard consumes. Dates are plain
// "YYYY-MM-DD" strings; timestamps are RFC 3339.

type PostDTO struct {
	Date          string   `json:"date"`
	Platform      string   `json:"platform"`
	Done          bool     `json:"done"`
	Link          string   `json:"link"`
	Caption       string   `json:"caption"`
	CarouselLinks []string `json:"carouselLinks"`
}

type StoriesDTO struct {
	Date  string `json:"date"`
	Done  bool   `json:"done"`
	Notes string `json:"notes"`
}

type NewsletterDTO struct {
	Type   string `json:"type"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Link   string `json:"link"`
}

type TaskDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Tag         string  `json:"tag"`
	Status      string  `json:"status"`
	Date        *string `json:"date,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type EpisodeDTO struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	CaptivateLink string  `json:"captivateLink"`
	YouTubeLink   string  `json:"youtubeLink"`
	ShowNotes     string  `json:"showNotes"`
	Status        string  `json:"status"`
	Date          *string `json:"date,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

type ClipDTO struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	CaptivateLink string  `json:"captivateLink"`
	YouTubeLink   string  `json:"youtubeLink"`
	Date          *string `json:"date,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

type FocusDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Products    []string `json:"products"`
	Active      bool     `json:"active"`
	IsCustom    bool     `json:"isCustom"`
}

type WeekConfigDTO struct {
	WeekID         string  `json:"weekId"`
	FocusID        *string `json:"focusId"`
	LandingPageURL *string `json:"landingPageUrl"`
	OfferPageURL   *string `json:"offerPageUrl"`
	IsCTAWeek      bool    `json:"isCtaWeek"`
}

type PlatformStatusDTO struct {
	Platform string `json:"platform"`
	Done     bool   `json:"done"`
}

type DayDTO struct {
	Date           string              `json:"date"`
	Platforms      []PlatformStatusDTO `json:"platforms"`
	StoriesDone    bool                `json:"storiesDone"`
	NewslettersDue []string            `json:"newslettersDue"`
	AllComplete    bool                `json:"allComplete"`
	Percentage     int                 `json:"percentage"`
}

type WeekDTO struct {
	ID     string    `json:"id"`
	Start  string    `json:"start"`
	End    string    `json:"end"`
	Year   int       `json:"year"`
	Number int       `json:"number"`
	Kind   string    `json:"kind"`
	Focus  *FocusDTO `json:"focus,omitempty"`
	Days   []DayDTO  `json:"days"`
}

func fmtDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := calendar.FormatDate(*t)
	return &s
}

func mapPostToDTO(p domain.Post) PostDTO {
	links := p.CarouselLinks
	if links == nil {
		links = []string{}
	}
	return PostDTO{
		Date:          calendar.FormatDate(p.Date),
		Platform:      string(p.Platform),
		Done:          p.Done,
		Link:          p.Link,
		Caption:       p.Caption,
		CarouselLinks: links,
	}
}

func mapStoriesToDTO(s domain.Stories) StoriesDTO {
	return StoriesDTO{
		Date:  calendar.FormatDate(s.Date),
		Done:  s.Done,
		Notes: s.Notes,
	}
}

func mapNewsletterToDTO(n domain.Newsletter) NewsletterDTO {
	return NewsletterDTO{
		Type:   string(n.Type),
		Date:   calendar.FormatDate(n.Date),
		Status: string(n.Status),
		Link:   n.Link,
	}
}

func mapTaskToDTO(t domain.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Tag:         t.Tag,
		Status:      string(t.Status),
		Date:        fmtDatePtr(t.Date),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapTasksToDTO(tasks []domain.Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, mapTaskToDTO(t))
	}
	return dtos
}

func mapEpisodeToDTO(e domain.PodcastEpisode) EpisodeDTO {
	return EpisodeDTO{
		ID:            e.ID,
		Title:         e.Title,
		CaptivateLink: e.CaptivateLink,
		YouTubeLink:   e.YouTubeLink,
		ShowNotes:     e.ShowNotes,
		Status:        string(e.Status),
		Date:          fmtDatePtr(e.Date),
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapClipToDTO(c domain.PodcastClip) ClipDTO {
	return ClipDTO{
		ID:            c.ID,
		Title:         c.Title,
		CaptivateLink: c.CaptivateLink,
		YouTubeLink:   c.YouTubeLink,
		Date:          fmtDatePtr(c.Date),
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapFocusToDTO(f domain.SprintFocus) FocusDTO {
	products := f.Products
	if products == nil {
		products = []string{}
	}
	return FocusDTO{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Color:       f.Color,
		Products:    products,
		Active:      f.Active,
		IsCustom:    f.IsCustom,
	}
}

func mapWeekConfigToDTO(w domain.WeekConfig) WeekConfigDTO {
	return WeekConfigDTO{
		WeekID:         w.WeekID,
		FocusID:        w.FocusID,
		LandingPageURL: w.LandingPageURL,
		OfferPageURL:   w.OfferPageURL,
		IsCTAWeek:      w.IsCTAWeek,
	}
}

func mapDayToDTO(date time.Time, src completion.ContentSource) DayDTO {
	status := completion.DayCompletion(date, src)

	platforms := make([]PlatformStatusDTO, 0, len(status.Platforms))
	for _, p := range status.Platforms {
		platforms = append(platforms, PlatformStatusDTO{
			Platform: string(p.Name),
			Done:     p.Done,
		})
	}

	due := calendar.NewslettersDueOn(date)
	dueNames := make([]string, 0, len(due))
	for _, typ := range due {
		dueNames = append(dueNames, string(typ))
	}

	return DayDTO{
		Date:           calendar.FormatDate(date),
		Platforms:      platforms,
		StoriesDone:    status.StoriesDone,
		NewslettersDue: dueNames,
		AllComplete:    status.AllComplete,
		Percentage:     completion.DayPercentage(date, src),
	}
}
