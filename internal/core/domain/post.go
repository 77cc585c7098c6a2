package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// PostStatus represents the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

var ErrPostNotFound = errors.New("post not found")
var ErrInvalidStatus = errors.New("invalid post status")

// TimestampLayout is the fixed-width UTC layout used for post timestamps.
// Fixed width keeps lexical order identical to chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// ParsePostStatus converts a raw status, defaulting empty input to draft.
func ParsePostStatus(s string) (PostStatus, error) {
	switch PostStatus(s) {
	case "":
		return StatusDraft, nil
	case StatusDraft, StatusPublished:
		return PostStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Post is the core aggregate root.
type Post struct {
	ID             string
	Title          string
	Content        json.RawMessage
	Status         PostStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
	AuthorUsername string
}

// PostPatch carries the subset of fields a partial update touches.
// A nil field is left untouched.
type PostPatch struct {
	Title   *string
	Content json.RawMessage
	Status  *PostStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Status == nil
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

var emptyContent = json.RawMessage(`{}`)

// EncodeContent normalises the content about to be stored. Absent content
// is stored as JSON null.
func EncodeContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}

// DecodeContent returns the stored content as a JSON document. When the
// stored text is not valid JSON it returns an empty object and false.
func DecodeContent(stored string) (json.RawMessage, bool) {
	if !json.Valid([]byte(stored)) {
		return emptyContent, false
	}
	return json.RawMessage(stored), true
}
