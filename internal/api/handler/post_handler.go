package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartblog/editor-api/internal/core/domain"
	"github.com/smartblog/editor-api/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /api/posts/.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  createPostResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/posts/ [post]
func (h *PostHandler) Create(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := domain.ParsePostStatus(req.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Title:          *req.Title,
		Content:        req.Content,
		Status:         status,
		AuthorUsername: username,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createPostResponse{ID: result.ID, Message: "Draft created"})
}

// List handles GET /api/posts/.
//
// @Summary      List posts, most recently updated first
// @Tags         posts
// @Produce      json
// @Success      200  {array}   postResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/posts/ [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPostResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PATCH /api/posts/:id.
//
// @Summary      Partially update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	var req updatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch, err := toPatch(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	changed, err := h.service.UpdatePost(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	if !changed {
		return c.JSON(http.StatusOK, messageResponse{Message: "No changes"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Post updated successfully"})
}

// Delete handles DELETE /api/posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	if err := h.service.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}

var jsonNull = []byte("null")

// toPatch keeps only the supplied fields. A supplied status must name a
// real state; an empty string is not read as draft here.
func toPatch(req updatePostRequest) (domain.PostPatch, error) {
	patch := domain.PostPatch{Title: req.Title}
	if len(req.Content) > 0 && !bytes.Equal(bytes.TrimSpace(req.Content), jsonNull) {
		patch.Content = req.Content
	}
	if req.Status != nil {
		if *req.Status == "" {
			return domain.PostPatch{}, domain.ErrInvalidStatus
		}
		s, err := domain.ParsePostStatus(*req.Status)
		if err != nil {
			return domain.PostPatch{}, err
		}
		patch.Status = &s
	}
	return patch, nil
}

func toPostResponse(p *domain.Post) postResponse {
	content := p.Content
	if len(content) == 0 {
		content = json.RawMessage(jsonNull)
	}
	return postResponse{
		ID:             p.ID,
		Title:          p.Title,
		Content:        content,
		Status:         string(p.Status),
		CreatedAt:      domain.FormatTimestamp(p.CreatedAt),
		UpdatedAt:      domain.FormatTimestamp(p.UpdatedAt),
		AuthorUsername: p.AuthorUsername,
	}
}
