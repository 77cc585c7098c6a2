package ports

import (
	"context"
	"time"

	"github.com/smartblog/editor-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
//
// Content is handed to the repository already serialised and returned as
// stored; recovery from undecodable content happens in the service layer.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	// List returns every post ordered by updated_at, newest first.
	List(ctx context.Context) ([]*domain.Post, error)
	// Update applies patch and sets updated_at in a single conditional write.
	// Returns domain.ErrPostNotFound when no row matched id.
	Update(ctx context.Context, id string, patch domain.PostPatch, updatedAt time.Time) error
	// Delete removes the row. Returns domain.ErrPostNotFound when no row matched id.
	Delete(ctx context.Context, id string) error
}
