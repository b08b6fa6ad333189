package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/epicplan/planner/internal/application/planner"
	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/completion"
	"github.com/epicplan/planner/internal/infrastructure/http/response"
)

// Default scroll window around the centre week.
const (
	defaultWeeksBefore = 4
	defaultWeeksAfter  = 4
)

// GetCalendar returns a window of weeks around a centre date, each day
// annotated with completion state.
// GET /calendar?center=YYYY-MM-DD&before=N&after=N
func (h *PlannerHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	center := time.Now().UTC()
	if raw := r.URL.Query().Get("center"); raw != "" {
		parsed, err := calendar.ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "invalid center date, expected YYYY-MM-DD")
			return
		}
		center = parsed
	}

	before := queryInt(r, "before", defaultWeeksBefore)
	after := queryInt(r, "after", defaultWeeksAfter)
	if before < 0 || after < 0 || before+after > 104 {
		response.BadRequest(w, "week window out of range")
		return
	}

	snap := h.planner.Snapshot()
	weeks := calendar.WeeksAround(center, before, after, calendar.DefaultWeekStart)

	dtos := make([]WeekDTO, 0, len(weeks))
	for _, week := range weeks {
		dtos = append(dtos, h.mapWeekToDTO(week, snap))
	}

	response.OK(w, struct {
		Weeks []WeekDTO `json:"weeks"`
	}{Weeks: dtos})
}

// GetDay returns a single day's completion state plus its scheduled
// content and tasks.
// GET /days/{date}
func (h *PlannerHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	snap := h.planner.Snapshot()

	day := mapDayToDTO(date, snap)

	posts := make([]PostDTO, 0, len(day.Platforms))
	for _, platform := range completion.DayPlatforms(date) {
		posts = append(posts, mapPostToDTO(snap.PostOrDefault(date, platform)))
	}

	newsletters := make([]NewsletterDTO, 0, 2)
	for _, typ := range calendar.NewslettersDueOn(date) {
		newsletters = append(newsletters, mapNewsletterToDTO(snap.NewsletterOrDefault(typ, date)))
	}

	response.OK(w, struct {
		Day         DayDTO          `json:"day"`
		Posts       []PostDTO       `json:"posts"`
		Stories     StoriesDTO      `json:"stories"`
		Newsletters []NewsletterDTO `json:"newsletters"`
		Tasks       []TaskDTO       `json:"tasks"`
	}{
		Day:         day,
		Posts:       posts,
		Stories:     mapStoriesToDTO(snap.StoriesOrDefault(date)),
		Newsletters: newsletters,
		Tasks:       mapTasksToDTO(snap.Tasks(planner.TaskFilter{Date: &date})),
	})
}

// GetWeek returns one week with its sprint configuration resolved.
// GET /weeks/{weekID}
func (h *PlannerHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	weekID := chi.URLParam(r, "weekID")
	if _, _, err := calendar.ParseWeekID(weekID); err != nil {
		response.BadRequest(w, "invalid week id, expected <year>-W<number>")
		return
	}

	snap := h.planner.Snapshot()

	var config *WeekConfigDTO
	if cfg, ok := snap.WeekConfig(weekID); ok {
		dto := mapWeekConfigToDTO(cfg)
		config = &dto
	}

	var focus *FocusDTO
	if resolved := h.planner.ResolveFocus(weekID); resolved != nil {
		dto := mapFocusToDTO(*resolved)
		focus = &dto
	}

	response.OK(w, struct {
		WeekID string         `json:"weekId"`
		Kind   string         `json:"kind"`
		Focus  *FocusDTO      `json:"focus,omitempty"`
		Config *WeekConfigDTO `json:"config,omitempty"`
	}{
		WeekID: weekID,
		Kind:   string(h.planner.ClassifyWeek(weekID)),
		Focus:  focus,
		Config: config,
	})
}

func (h *PlannerHandler) mapWeekToDTO(week calendar.Week, snap *planner.Snapshot) WeekDTO {
	days := make([]DayDTO, 0, len(week.Days))
	for _, day := range week.Days {
		days = append(days, mapDayToDTO(day, snap))
	}

	var focus *FocusDTO
	if resolved := h.planner.ResolveFocus(week.ID()); resolved != nil {
		dto := mapFocusToDTO(*resolved)
		focus = &dto
	}

	return WeekDTO{
		ID:     week.ID(),
		Start:  calendar.FormatDate(week.Start),
		End:    calendar.FormatDate(week.End),
		Year:   week.Year,
		Number: week.Number,
		Kind:   string(h.planner.ClassifyWeek(week.ID())),
		Focus:  focus,
		Days:   days,
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
