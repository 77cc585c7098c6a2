package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartblog/editor-api/internal/api/metrics"
	"github.com/smartblog/editor-api/internal/core/domain"
	"github.com/smartblog/editor-api/internal/core/ports"
)

type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger, now: time.Now}
}

// timestamp returns the current instant at microsecond precision, the
// resolution of TimestampLayout. Successive stamps strictly increase, so an
// update issued within the same tick as the previous write still moves
// updated_at forward.
func (s *PostService) timestamp() time.Time {
	now := s.now().UTC().Truncate(time.Microsecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

// CreatePost stores a new post. Status defaults to draft.
func (s *PostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*ports.PostResult, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}

	now := s.timestamp()
	post := &domain.Post{
		ID:             uuid.NewString(),
		Title:          input.Title,
		Content:        input.Content,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
		AuthorUsername: input.AuthorUsername,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info().Str("post_id", post.ID).Str("author", input.AuthorUsername).Msg("post created")

	return &ports.PostResult{
		ID:        post.ID,
		Status:    post.Status,
		CreatedAt: post.CreatedAt,
	}, nil
}

// ListPosts returns every post, newest update first. A post whose stored
// content is not valid JSON is returned with an empty document instead of
// failing the listing.
func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		content, ok := domain.DecodeContent(string(p.Content))
		if !ok {
			metrics.PostContentDecodeFailuresTotal.Inc()
			s.logger.Warn().Str("post_id", p.ID).Msg("stored content is not valid JSON, returning empty document")
		}
		p.Content = content
	}
	return posts, nil
}

// UpdatePost applies a partial update. An empty patch touches nothing.
func (s *PostService) UpdatePost(ctx context.Context, id string, patch domain.PostPatch) (bool, error) {
	if patch.IsEmpty() {
		metrics.PostMutationsTotal.WithLabelValues("update", "noop").Inc()
		return false, nil
	}

	if err := s.repo.Update(ctx, id, patch, s.timestamp()); err != nil {
		metrics.PostMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
		return false, err
	}

	metrics.PostMutationsTotal.WithLabelValues("update", "ok").Inc()
	s.logger.Info().Str("post_id", id).Msg("post updated")
	return true, nil
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		metrics.PostMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
		return err
	}

	metrics.PostMutationsTotal.WithLabelValues("delete", "ok").Inc()
	s.logger.Info().Str("post_id", id).Msg("post deleted")
	return nil
}

func mutationResult(err error) string {
	if errors.Is(err, domain.ErrPostNotFound) {
		return "not_found"
	}
	return "error"
}
