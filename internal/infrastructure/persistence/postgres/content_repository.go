package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/epicplan/planner/internal/domain"
)

// Content rows: posts, stories, newsletters. All writes are upserts by
// natural key so the caller never has to know whether a record exists.

const postColumns = "date, platform, done, link, caption, carousel_links, created_at, updated_at"

func scanPost(row pgx.Row) (domain.Post, error) {
	var p domain.Post
	var platform string
	if err := row.Scan(&p.Date, &platform, &p.Done, &p.Link, &p.Caption, &p.CarouselLinks, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Post{}, err
	}
	p.Date = asDate(p.Date)
	p.Platform = domain.Platform(platform)
	return p, nil
}

func (s *Store) LoadPosts(ctx context.Context) ([]domain.Post, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+postColumns+" FROM posts ORDER BY date, platform")
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Store) UpsertPost(ctx context.Context, post domain.Post) (domain.Post, error) {
	carousel := post.CarouselLinks
	if carousel == nil {
		carousel = []string{}
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO posts (date, platform, done, link, caption, carousel_links)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (date, platform) DO UPDATE SET
			done = EXCLUDED.done,
			link = EXCLUDED.link,
			caption = EXCLUDED.caption,
			carousel_links = EXCLUDED.carousel_links,
			updated_at = NOW()
		RETURNING `+postColumns,
		post.Date, string(post.Platform), post.Done, post.Link, post.Caption, carousel)

	saved, err := scanPost(row)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to upsert post: %w", err)
	}
	return saved, nil
}

const storiesColumns = "date, done, notes, created_at, updated_at"

func scanStories(row pgx.Row) (domain.Stories, error) {
	var st domain.Stories
	if err := row.Scan(&st.Date, &st.Done, &st.Notes, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return domain.Stories{}, err
	}
	st.Date = asDate(st.Date)
	return st, nil
}

func (s *Store) LoadStories(ctx context.Context) ([]domain.Stories, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+storiesColumns+" FROM stories ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to load stories: %w", err)
	}
	defer rows.Close()

	var all []domain.Stories
	for rows.Next() {
		st, err := scanStories(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stories: %w", err)
		}
		all = append(all, st)
	}
	return all, rows.Err()
}

func (s *Store) UpsertStories(ctx context.Context, stories domain.Stories) (domain.Stories, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO stories (date, done, notes)
		VALUES ($1, $2, $3)
		ON CONFLICT (date) DO UPDATE SET
			done = EXCLUDED.done,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING `+storiesColumns,
		stories.Date, stories.Done, stories.Notes)

	saved, err := scanStories(row)
	if err != nil {
		return domain.Stories{}, fmt.Errorf("failed to upsert stories: %w", err)
	}
	return saved, nil
}

const newsletterColumns = "type, date, status, link, created_at, updated_at"

func scanNewsletter(row pgx.Row) (domain.Newsletter, error) {
	var n domain.Newsletter
	var typ, status string
	if err := row.Scan(&typ, &n.Date, &status, &n.Link, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return domain.Newsletter{}, err
	}
	n.Date = asDate(n.Date)
	n.Type = domain.NewsletterType(typ)
	n.Status = domain.ContentStatus(status)
	return n, nil
}

func (s *Store) LoadNewsletters(ctx context.Context) ([]domain.Newsletter, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+newsletterColumns+" FROM newsletters ORDER BY date, type")
	if err != nil {
		return nil, fmt.Errorf("failed to load newsletters: %w", err)
	}
	defer rows.Close()

	var issues []domain.Newsletter
	for rows.Next() {
		n, err := scanNewsletter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan newsletter: %w", err)
		}
		issues = append(issues, n)
	}
	return issues, rows.Err()
}

func (s *Store) UpsertNewsletter(ctx context.Context, issue domain.Newsletter) (domain.Newsletter, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO newsletters (type, date, status, link)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (type, date) DO UPDATE SET
			status = EXCLUDED.status,
			link = EXCLUDED.link,
			updated_at = NOW()
		RETURNING `+newsletterColumns,
		string(issue.Type), issue.Date, string(issue.Status), issue.Link)

	saved, err := scanNewsletter(row)
	if err != nil {
		return domain.Newsletter{}, fmt.Errorf("failed to upsert newsletter: %w", err)
	}
	return saved, nil
}
