package mongo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartblog/editor-api/internal/core/domain"
)

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

// postDocument keeps content as serialised text so arbitrary JSON (arrays,
// scalars, null) survives unchanged. Timestamps are fixed-width strings:
// BSON dates stop at milliseconds and sort order must match the sqlite store.
type postDocument struct {
	ID             string `bson:"_id"`
	Title          string `bson:"title"`
	Content        string `bson:"content"`
	Status         string `bson:"status"`
	CreatedAt      string `bson:"created_at"`
	UpdatedAt      string `bson:"updated_at"`
	AuthorUsername string `bson:"author_username"`
}

func toDocument(p *domain.Post) postDocument {
	return postDocument{
		ID:             p.ID,
		Title:          p.Title,
		Content:        domain.EncodeContent(p.Content),
		Status:         string(p.Status),
		CreatedAt:      domain.FormatTimestamp(p.CreatedAt),
		UpdatedAt:      domain.FormatTimestamp(p.UpdatedAt),
		AuthorUsername: p.AuthorUsername,
	}
}

func (d postDocument) toDomain() (*domain.Post, error) {
	createdAt, err := domain.ParseTimestamp(d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("post %s created_at: %w", d.ID, err)
	}
	updatedAt, err := domain.ParseTimestamp(d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("post %s updated_at: %w", d.ID, err)
	}
	return &domain.Post{
		ID:             d.ID,
		Title:          d.Title,
		Content:        json.RawMessage(d.Content),
		Status:         domain.PostStatus(d.Status),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		AuthorUsername: d.AuthorUsername,
	}, nil
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toDocument(p)); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch, updatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patchDocument(patch, updatedAt)})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func patchDocument(patch domain.PostPatch, updatedAt time.Time) bson.M {
	set := bson.M{"updated_at": domain.FormatTimestamp(updatedAt)}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = domain.EncodeContent(patch.Content)
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	return set
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates the index backing the listing order.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updated_at", Value: -1}},
	})
	return err
}
