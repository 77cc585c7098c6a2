package mongo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/smartblog/editor-api/internal/core/domain"
)

func TestPostDocument_RoundTrip(t *testing.T) {
	at := time.Date(2026, 2, 3, 4, 5, 6, 123_456_000, time.UTC)
	p := &domain.Post{
		ID:             "id-1",
		Title:          "Hello",
		Content:        json.RawMessage(`[{"type":"p"}]`),
		Status:         domain.StatusPublished,
		CreatedAt:      at,
		UpdatedAt:      at,
		AuthorUsername: "alice",
	}

	got, err := toDocument(p).toDomain()
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if got.ID != p.ID || got.Title != p.Title || got.Status != p.Status || got.AuthorUsername != p.AuthorUsername {
		t.Fatalf("unexpected post: %+v", got)
	}
	if string(got.Content) != string(p.Content) {
		t.Fatalf("content: %s", got.Content)
	}
	if !got.CreatedAt.Equal(at) || !got.UpdatedAt.Equal(at) {
		t.Fatalf("timestamps: %v %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestPostDocument_KeepsMicroseconds(t *testing.T) {
	created := time.Date(2026, 2, 3, 4, 5, 6, 1_000, time.UTC)
	updated := created.Add(time.Microsecond)

	doc := toDocument(&domain.Post{ID: "x", CreatedAt: created, UpdatedAt: updated})
	if doc.UpdatedAt <= doc.CreatedAt {
		t.Fatalf("one microsecond apart must sort apart: %q vs %q", doc.CreatedAt, doc.UpdatedAt)
	}

	got, err := doc.toDomain()
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("updated_at %v must be after created_at %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestPostDocument_BadTimestamp(t *testing.T) {
	doc := postDocument{ID: "x", CreatedAt: "yesterday", UpdatedAt: "2026-02-03T00:00:00.000000Z"}
	if _, err := doc.toDomain(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestToDocument_NilContentIsNull(t *testing.T) {
	if doc := toDocument(&domain.Post{ID: "x"}); doc.Content != "null" {
		t.Fatalf("expected null, got %q", doc.Content)
	}
}

func TestPatchDocument_OnlyPatchedFields(t *testing.T) {
	at := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	status := domain.StatusPublished

	set := patchDocument(domain.PostPatch{Status: &status}, at)
	if len(set) != 2 {
		t.Fatalf("expected status and updated_at only, got %v", set)
	}
	if set["status"] != "published" {
		t.Errorf("status: %v", set["status"])
	}
	if set["updated_at"] != "2026-02-03T00:00:00.000000Z" {
		t.Errorf("updated_at: %v", set["updated_at"])
	}

	title := "New"
	set = patchDocument(domain.PostPatch{Title: &title, Content: json.RawMessage(`{"a":1}`)}, at)
	if set["title"] != "New" || set["content"] != `{"a":1}` {
		t.Errorf("unexpected set: %v", set)
	}
	if _, ok := set["status"]; ok {
		t.Error("status must not be set when absent from the patch")
	}
}
