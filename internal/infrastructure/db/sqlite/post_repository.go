package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/smartblog/editor-api/internal/core/domain"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, status, created_at, updated_at, author_username)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, domain.EncodeContent(p.Content), string(p.Status),
		domain.FormatTimestamp(p.CreatedAt), domain.FormatTimestamp(p.UpdatedAt), p.AuthorUsername,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// List returns content exactly as stored; decoding is left to the caller.
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, status, created_at, updated_at, author_username
		 FROM posts ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var (
			p                    domain.Post
			content, status      string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&p.ID, &p.Title, &content, &status, &createdAt, &updatedAt, &p.AuthorUsername); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Content = json.RawMessage(content)
		p.Status = domain.PostStatus(status)
		if p.CreatedAt, err = domain.ParseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("post %s created_at: %w", p.ID, err)
		}
		if p.UpdatedAt, err = domain.ParseTimestamp(updatedAt); err != nil {
			return nil, fmt.Errorf("post %s updated_at: %w", p.ID, err)
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Update writes the patched columns and updated_at in one statement.
func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch, updatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, domain.EncodeContent(patch.Content))
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, domain.FormatTimestamp(updatedAt), id)

	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
