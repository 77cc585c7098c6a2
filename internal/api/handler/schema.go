package handler

import "encoding/json"

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=72"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Posts ---

// createPostRequest requires title to be present; an empty title is allowed.
type createPostRequest struct {
	Title   *string         `json:"title"   validate:"required"`
	Content json.RawMessage `json:"content" swaggertype:"object"`
	Status  string          `json:"status"  validate:"omitempty,oneof=draft published"`
}

// updatePostRequest treats absent and null fields alike: not supplied.
type updatePostRequest struct {
	Title   *string         `json:"title"`
	Content json.RawMessage `json:"content" swaggertype:"object"`
	Status  *string         `json:"status"  validate:"omitempty,oneof=draft published"`
}

type createPostResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type postResponse struct {
	ID             string          `json:"_id"`
	Title          string          `json:"title"`
	Content        json.RawMessage `json:"content" swaggertype:"object"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
	AuthorUsername string          `json:"author_username"`
}

// --- AI ---

type generateRequest struct {
	Text       *string `json:"text"        validate:"required"`
	PromptType string  `json:"prompt_type" example:"summary"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}
