package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/domain"
)

// === Sprint focus catalog ===

// AddFocus creates a custom sprint focus. Custom focuses always get the
// "custom-" id prefix so they can never clobber a default focus.
func (s *Service) AddFocus(ctx context.Context, focus domain.SprintFocus) (domain.SprintFocus, error) {
	if s.repo == nil {
		return domain.SprintFocus{}, domain.ErrNotConfigured
	}

	name, err := domain.NewTitle(focus.Name)
	if err != nil {
		return domain.SprintFocus{}, err
	}
	focus.Name = name.String()

	if focus.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return domain.SprintFocus{}, fmt.Errorf("generate focus id: %w", err)
		}
		focus.ID = domain.CustomFocusPrefix + id.String()
	}
	focus.Active = true
	focus.IsCustom = true
	focus.CreatedAt = time.Now().UTC()

	saved, err := s.repo.CreateFocus(ctx, focus)
	if err != nil {
		return domain.SprintFocus{}, fmt.Errorf("create focus: %w", err)
	}

	s.Snapshot().putFocus(saved)
	s.notify()
	return saved, nil
}

// UpdateFocus applies a partial update to a sprint focus.
func (s *Service) UpdateFocus(ctx context.Context, id string, update domain.FocusUpdate) (domain.SprintFocus, error) {
	if s.repo == nil {
		return domain.SprintFocus{}, domain.ErrNotConfigured
	}

	if update.Name != nil {
		name, err := domain.NewTitle(*update.Name)
		if err != nil {
			return domain.SprintFocus{}, err
		}
		normalized := name.String()
		update.Name = &normalized
	}

	saved, err := s.repo.UpdateFocus(ctx, id, update)
	if err != nil {
		return domain.SprintFocus{}, err
	}

	if saved.Active {
		s.Snapshot().putFocus(saved)
	} else {
		s.Snapshot().removeFocus(id)
	}
	s.notify()
	return saved, nil
}

// DeleteFocus soft-deletes a focus: the row is kept with active=false and
// the focus disappears from the active set. Week assignments referencing
// it resolve to nil from then on.
func (s *Service) DeleteFocus(ctx context.Context, id string) error {
	if s.repo == nil {
		return domain.ErrNotConfigured
	}

	if err := s.repo.DeactivateFocus(ctx, id); err != nil {
		return err
	}

	s.Snapshot().removeFocus(id)
	s.notify()
	return nil
}

// === Week configuration ===

// SetWeekFocus assigns a sprint focus to a week (nil clears it). The
// focus must exist in the active set.
func (s *Service) SetWeekFocus(ctx context.Context, weekID string, focusID *string) (domain.WeekConfig, error) {
	if s.repo == nil {
		return domain.WeekConfig{}, domain.ErrNotConfigured
	}
	if _, _, err := calendar.ParseWeekID(weekID); err != nil {
		return domain.WeekConfig{}, domain.ErrInvalidWeekID
	}
	if focusID != nil {
		if _, ok := s.Snapshot().Focus(*focusID); !ok {
			return domain.WeekConfig{}, fmt.Errorf("%w: %s", domain.ErrFocusNotFound, *focusID)
		}
	}

	cfg, err := s.repo.SetWeekFocus(ctx, weekID, focusID)
	if err != nil {
		return domain.WeekConfig{}, fmt.Errorf("set week focus: %w", err)
	}

	s.Snapshot().putWeekConfig(cfg)
	s.notify()
	return cfg, nil
}

// SetWeekLandingPage stores a week's landing page URL, normalized to
// always carry a scheme. An empty URL clears the field.
func (s *Service) SetWeekLandingPage(ctx context.Context, weekID, url string) (domain.WeekConfig, error) {
	if s.repo == nil {
		return domain.WeekConfig{}, domain.ErrNotConfigured
	}
	if _, _, err := calendar.ParseWeekID(weekID); err != nil {
		return domain.WeekConfig{}, domain.ErrInvalidWeekID
	}

	cfg, err := s.repo.SetWeekLandingPage(ctx, weekID, domain.NormalizeURL(url))
	if err != nil {
		return domain.WeekConfig{}, fmt.Errorf("set landing page: %w", err)
	}

	s.Snapshot().putWeekConfig(cfg)
	s.notify()
	return cfg, nil
}

// SetWeekOfferPage stores a week's offer page URL, normalized like the
// landing page.
func (s *Service) SetWeekOfferPage(ctx context.Context, weekID, url string) (domain.WeekConfig, error) {
	if s.repo == nil {
		return domain.WeekConfig{}, domain.ErrNotConfigured
	}
	if _, _, err := calendar.ParseWeekID(weekID); err != nil {
		return domain.WeekConfig{}, domain.ErrInvalidWeekID
	}

	cfg, err := s.repo.SetWeekOfferPage(ctx, weekID, domain.NormalizeURL(url))
	if err != nil {
		return domain.WeekConfig{}, fmt.Errorf("set offer page: %w", err)
	}

	s.Snapshot().putWeekConfig(cfg)
	s.notify()
	return cfg, nil
}

// SetWeekCTA flags or unflags a week for call-to-action content.
func (s *Service) SetWeekCTA(ctx context.Context, weekID string, isCTA bool) (domain.WeekConfig, error) {
	if s.repo == nil {
		return domain.WeekConfig{}, domain.ErrNotConfigured
	}
	if _, _, err := calendar.ParseWeekID(weekID); err != nil {
		return domain.WeekConfig{}, domain.ErrInvalidWeekID
	}

	cfg, err := s.repo.SetWeekCTA(ctx, weekID, isCTA)
	if err != nil {
		return domain.WeekConfig{}, fmt.Errorf("set cta flag: %w", err)
	}

	s.Snapshot().putWeekConfig(cfg)
	s.notify()
	return cfg, nil
}

// === Week classification ===

// ResolveFocus returns the active sprint focus assigned to a week, or nil
// when the week has no assignment or the referenced focus was
// deactivated or deleted.
func (s *Service) ResolveFocus(weekID string) *domain.SprintFocus {
	snap := s.Snapshot()

	cfg, ok := snap.WeekConfig(weekID)
	if !ok || cfg.FocusID == nil {
		return nil
	}

	focus, ok := snap.Focus(*cfg.FocusID)
	if !ok {
		return nil
	}
	return &focus
}

// ClassifyWeek reports how a week should be planned: custom-focus
// whenever an assigned focus resolves, otherwise cta-content when the
// week is flagged (explicitly, or by even week-number parity in legacy
// mode), otherwise content-theme.
func (s *Service) ClassifyWeek(weekID string) domain.WeekKind {
	if s.ResolveFocus(weekID) != nil {
		return domain.WeekCustomFocus
	}

	if cfg, ok := s.Snapshot().WeekConfig(weekID); ok && cfg.IsCTAWeek {
		return domain.WeekCTAContent
	}

	if s.cfg.LegacyParityCTA {
		if _, week, err := calendar.ParseWeekID(weekID); err == nil && week%2 == 0 {
			return domain.WeekCTAContent
		}
	}

	return domain.WeekContentTheme
}
