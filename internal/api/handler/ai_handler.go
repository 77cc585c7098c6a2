package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartblog/editor-api/internal/core/domain"
	"github.com/smartblog/editor-api/internal/core/ports"
)

type AIHandler struct {
	service ports.AIService
}

func NewAIHandler(service ports.AIService) *AIHandler {
	return &AIHandler{service: service}
}

// Generate handles POST /api/ai/generate.
//
// @Summary      Generate text from editor content
// @Description  prompt_type "summary" (default) or "grammar" selects a template; any other value sends the text as is.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body      generateRequest  true  "Text and prompt type"
// @Success      200   {object}  generateResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/ai/generate [post]
func (h *AIHandler) Generate(c echo.Context) error {
	var req generateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Generate(c.Request().Context(), *req.Text, domain.PromptType(req.PromptType))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, generateResponse{GeneratedText: out})
}
