package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/epicplan/planner/internal/domain"
)

const episodeColumns = "id, title, captivate_link, youtube_link, show_notes, status, date, created_at, updated_at"

func scanEpisode(row pgx.Row) (domain.PodcastEpisode, error) {
	var e domain.PodcastEpisode
	var status string
	if err := row.Scan(&e.ID, &e.Title, &e.CaptivateLink, &e.YouTubeLink, &e.ShowNotes, &status, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return domain.PodcastEpisode{}, err
	}
	e.Status = domain.ContentStatus(status)
	e.Date = asDatePtr(e.Date)
	return e, nil
}

func (s *Store) LoadEpisodes(ctx context.Context) ([]domain.PodcastEpisode, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+episodeColumns+" FROM podcast_episodes ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to load episodes: %w", err)
	}
	defer rows.Close()

	var episodes []domain.PodcastEpisode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan episode: %w", err)
		}
		episodes = append(episodes, e)
	}
	return episodes, rows.Err()
}

func (s *Store) CreateEpisode(ctx context.Context, episode domain.PodcastEpisode) (domain.PodcastEpisode, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO podcast_episodes (id, title, captivate_link, youtube_link, show_notes, status, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+episodeColumns,
		episode.ID, episode.Title, episode.CaptivateLink, episode.YouTubeLink,
		episode.ShowNotes, string(episode.Status), episode.Date, episode.CreatedAt)

	saved, err := scanEpisode(row)
	if err != nil {
		return domain.PodcastEpisode{}, fmt.Errorf("failed to create episode: %w", err)
	}
	return saved, nil
}

func (s *Store) UpdateEpisode(ctx context.Context, id string, update domain.EpisodeUpdate) (domain.PodcastEpisode, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE podcast_episodes SET
			title = COALESCE($2, title),
			captivate_link = COALESCE($3, captivate_link),
			youtube_link = COALESCE($4, youtube_link),
			show_notes = COALESCE($5, show_notes),
			status = COALESCE($6, status),
			date = COALESCE($7::date, date),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+episodeColumns,
		id, update.Title, update.CaptivateLink, update.YouTubeLink,
		update.ShowNotes, (*string)(update.Status), update.Date)

	saved, err := scanEpisode(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PodcastEpisode{}, domain.ErrEpisodeNotFound
		}
		return domain.PodcastEpisode{}, fmt.Errorf("failed to update episode: %w", err)
	}
	return saved, nil
}

const clipColumns = "id, title, captivate_link, youtube_link, date, created_at, updated_at"

func scanClip(row pgx.Row) (domain.PodcastClip, error) {
	var c domain.PodcastClip
	if err := row.Scan(&c.ID, &c.Title, &c.CaptivateLink, &c.YouTubeLink, &c.Date, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.PodcastClip{}, err
	}
	c.Date = asDatePtr(c.Date)
	return c, nil
}

func (s *Store) LoadClips(ctx context.Context) ([]domain.PodcastClip, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+clipColumns+" FROM podcast_clips ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to load clips: %w", err)
	}
	defer rows.Close()

	var clips []domain.PodcastClip
	for rows.Next() {
		c, err := scanClip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clip: %w", err)
		}
		clips = append(clips, c)
	}
	return clips, rows.Err()
}

func (s *Store) CreateClip(ctx context.Context, clip domain.PodcastClip) (domain.PodcastClip, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO podcast_clips (id, title, captivate_link, youtube_link, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+clipColumns,
		clip.ID, clip.Title, clip.CaptivateLink, clip.YouTubeLink, clip.Date, clip.CreatedAt)

	saved, err := scanClip(row)
	if err != nil {
		return domain.PodcastClip{}, fmt.Errorf("failed to create clip: %w", err)
	}
	return saved, nil
}

func (s *Store) UpdateClip(ctx context.Context, id string, update domain.ClipUpdate) (domain.PodcastClip, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE podcast_clips SET
			title = COALESCE($2, title),
			captivate_link = COALESCE($3, captivate_link),
			youtube_link = COALESCE($4, youtube_link),
			date = COALESCE($5::date, date),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+clipColumns,
		id, update.Title, update.CaptivateLink, update.YouTubeLink, update.Date)

	saved, err := scanClip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PodcastClip{}, domain.ErrClipNotFound
		}
		return domain.PodcastClip{}, fmt.Errorf("failed to update clip: %w", err)
	}
	return saved, nil
}
