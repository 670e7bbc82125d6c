package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotemint/quotegen/internal/adapters/http/dto"
	"github.com/quotemint/quotegen/internal/app"
)

// QuotationGenerator is the application service contract the handler needs.
type QuotationGenerator interface {
	Generate(ctx context.Context, userText string, action app.Action) (*app.Document, error)
}

// QuotationHandler handles quotation generation endpoints.
type QuotationHandler struct {
	service QuotationGenerator
}

// NewQuotationHandler creates a new quotation handler.
// Panics if service is nil.
func NewQuotationHandler(service QuotationGenerator) *QuotationHandler {
	if service == nil {
		panic("QuotationHandler: service is required")
	}

	return &QuotationHandler{service: service}
}

// GenerateQuotationRequest is the request body for POST /api/v1/quotations.
type GenerateQuotationRequest struct {
	// UserInput is the free-text quotation request.
	UserInput string `json:"user_input" validate:"required,notempty"`

	// Action selects the output: "preview" (HTML, default) or
	// "download" (PDF attachment).
	Action string `json:"action" validate:"omitempty,oneof=preview download"`
}

// Generate handles POST /api/v1/quotations
// Runs the extraction pipeline and responds with the rendered document
// itself: HTML for previews, a PDF attachment for downloads.
//
// @Summary Generate a quotation from free text
// @Description Extracts a structured quotation from the request text and renders it
// @Tags quotations
// @Accept json
// @Produce html
// @Produce application/pdf
// @Success 200 {string} string "rendered quotation document"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotations [post]
func (h *QuotationHandler) Generate(c *gin.Context) {
	var req GenerateQuotationRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindingError(c, err)
		return
	}

	doc, err := h.service.Generate(c.Request.Context(), req.UserInput, app.Action(req.Action))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if doc.Filename != "" {
		c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	}

	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

// respondBindingError writes a 400 for malformed or invalid request bodies.
func respondBindingError(c *gin.Context, err error) {
	if fieldErrors := dto.ValidationErrors(err); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeBadRequest,
			"request validation failed",
			fieldErrors,
		).WithTraceID(dto.GetTraceID(c)))
		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.ErrorCodeBadRequest,
		"invalid request body",
	).WithTraceID(dto.GetTraceID(c)))
}

// RegisterQuotationRoutes registers quotation routes on the given router group.
func (h *QuotationHandler) RegisterQuotationRoutes(rg *gin.RouterGroup) {
	rg.POST("/quotations", h.Generate)
}
