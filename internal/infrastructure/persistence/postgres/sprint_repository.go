package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/epicplan/planner/internal/domain"
)

const focusColumns = "id, name, description, color, products, active, is_custom, created_at, updated_at"

func scanFocus(row pgx.Row) (domain.SprintFocus, error) {
	var f domain.SprintFocus
	if err := row.Scan(&f.ID, &f.Name, &f.Description, &f.Color, &f.Products, &f.Active, &f.IsCustom, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return domain.SprintFocus{}, err
	}
	return f, nil
}

func (s *Store) LoadActiveFocuses(ctx context.Context) ([]domain.SprintFocus, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+focusColumns+" FROM sprint_focuses WHERE active ORDER BY is_custom, name")
	if err != nil {
		return nil, fmt.Errorf("failed to load sprint focuses: %w", err)
	}
	defer rows.Close()

	var focuses []domain.SprintFocus
	for rows.Next() {
		f, err := scanFocus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sprint focus: %w", err)
		}
		focuses = append(focuses, f)
	}
	return focuses, rows.Err()
}

func (s *Store) CreateFocus(ctx context.Context, focus domain.SprintFocus) (domain.SprintFocus, error) {
	products := focus.Products
	if products == nil {
		products = []string{}
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO sprint_focuses (id, name, description, color, products, active, is_custom, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+focusColumns,
		focus.ID, focus.Name, focus.Description, focus.Color, products, focus.Active, focus.IsCustom, focus.CreatedAt)

	saved, err := scanFocus(row)
	if err != nil {
		return domain.SprintFocus{}, fmt.Errorf("failed to create sprint focus: %w", err)
	}
	return saved, nil
}

func (s *Store) UpdateFocus(ctx context.Context, id string, update domain.FocusUpdate) (domain.SprintFocus, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE sprint_focuses SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			color = COALESCE($4, color),
			products = COALESCE($5, products),
			active = COALESCE($6, active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+focusColumns,
		id, update.Name, update.Description, update.Color, update.Products, update.Active)

	saved, err := scanFocus(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SprintFocus{}, domain.ErrFocusNotFound
		}
		return domain.SprintFocus{}, fmt.Errorf("failed to update sprint focus: %w", err)
	}
	return saved, nil
}

func (s *Store) DeactivateFocus(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "UPDATE sprint_focuses SET active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate sprint focus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFocusNotFound
	}
	return nil
}

const weekConfigColumns = "week_id, focus_id, landing_page_url, offer_page_url, is_cta_week, updated_at"

func scanWeekConfig(row pgx.Row) (domain.WeekConfig, error) {
	var w domain.WeekConfig
	if err := row.Scan(&w.WeekID, &w.FocusID, &w.LandingPageURL, &w.OfferPageURL, &w.IsCTAWeek, &w.UpdatedAt); err != nil {
		return domain.WeekConfig{}, err
	}
	return w, nil
}

func (s *Store) LoadWeekConfigs(ctx context.Context) ([]domain.WeekConfig, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+weekConfigColumns+" FROM week_configs ORDER BY week_id")
	if err != nil {
		return nil, fmt.Errorf("failed to load week configs: %w", err)
	}
	defer rows.Close()

	var configs []domain.WeekConfig
	for rows.Next() {
		w, err := scanWeekConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan week config: %w", err)
		}
		configs = append(configs, w)
	}
	return configs, rows.Err()
}

// Week config writes target one column each so setting a focus never
// erases a landing page set earlier, and vice versa.

func (s *Store) SetWeekFocus(ctx context.Context, weekID string, focusID *string) (domain.WeekConfig, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO week_configs (week_id, focus_id)
		VALUES ($1, $2)
		ON CONFLICT (week_id) DO UPDATE SET
			focus_id = EXCLUDED.focus_id,
			updated_at = NOW()
		RETURNING `+weekConfigColumns,
		weekID, focusID)

	saved, err := scanWeekConfig(row)
	if err != nil {
		return domain.WeekConfig{}, fmt.Errorf("failed to set week focus: %w", err)
	}
	return saved, nil
}

func (s *Store) SetWeekLandingPage(ctx context.Context, weekID, url string) (domain.WeekConfig, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO week_configs (week_id, landing_page_url)
		VALUES ($1, NULLIF($2, ''))
		ON CONFLICT (week_id) DO UPDATE SET
			landing_page_url = EXCLUDED.landing_page_url,
			updated_at = NOW()
		RETURNING `+weekConfigColumns,
		weekID, url)

	saved, err := scanWeekConfig(row)
	if err != nil {
		return domain.WeekConfig{}, fmt.Errorf("failed to set week landing page: %w", err)
	}
	return saved, nil
}

func (s *Store) SetWeekOfferPage(ctx context.Context, weekID, url string) (domain.WeekConfig, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO week_configs (week_id, offer_page_url)
		VALUES ($1, NULLIF($2, ''))
		ON CONFLICT (week_id) DO UPDATE SET
			offer_page_url = EXCLUDED.offer_page_url,
			updated_at = NOW()
		RETURNING `+weekConfigColumns,
		weekID, url)

	saved, err := scanWeekConfig(row)
	if err != nil {
		return domain.WeekConfig{}, fmt.Errorf("failed to set week offer page: %w", err)
	}
	return saved, nil
}

func (s *Store) SetWeekCTA(ctx context.Context, weekID string, isCTA bool) (domain.WeekConfig, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO week_configs (week_id, is_cta_week)
		VALUES ($1, $2)
		ON CONFLICT (week_id) DO UPDATE SET
			is_cta_week = EXCLUDED.is_cta_week,
			updated_at = NOW()
		RETURNING `+weekConfigColumns,
		weekID, isCTA)

	saved, err := scanWeekConfig(row)
	if err != nil {
		return domain.WeekConfig{}, fmt.Errorf("failed to set week cta flag: %w", err)
	}
	return saved, nil
}
