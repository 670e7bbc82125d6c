// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quotemint/quotegen/internal/app/extraction"
	"github.com/quotemint/quotegen/internal/domain"
	"github.com/quotemint/quotegen/internal/ports"
)

// Action selects the output form of a generated quotation.
type Action string

const (
	// ActionPreview renders the quotation as an HTML document.
	ActionPreview Action = "preview"

	// ActionDownload renders the quotation as a PDF attachment.
	ActionDownload Action = "download"
)

// Document is a rendered quotation ready to hand to the presentation layer.
type Document struct {
	// ContentType is the MIME type of Body.
	ContentType string

	// Filename is the suggested attachment filename; empty for previews.
	Filename string

	// Body is the rendered document.
	Body []byte

	// Record is the canonical quotation the document was rendered from.
	Record *domain.QuotationRecord
}

// QuotationService runs the extraction-and-reconciliation pipeline:
// user text -> prompt -> oracle -> parse -> reconcile -> render.
//
// The pipeline is stateless and single-pass per request; no partial state is
// carried between requests, so concurrent invocations are independent.
type QuotationService struct {
	oracle   ports.Oracle
	renderer ports.QuotationRenderer
	schema   extraction.Schema
	logger   *slog.Logger
}

// QuotationServiceConfig contains configuration for the quotation service.
type QuotationServiceConfig struct {
	Oracle   ports.Oracle
	Renderer ports.QuotationRenderer
	Logger   *slog.Logger
}

// NewQuotationService creates a new quotation service with the provided
// dependencies. Panics if Oracle or Renderer is nil. Defaults logger to
// slog.Default() if nil.
func NewQuotationService(cfg QuotationServiceConfig) *QuotationService {
	if cfg.Oracle == nil {
		panic("QuotationService: Oracle is required")
	}

	if cfg.Renderer == nil {
		panic("QuotationService: Renderer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuotationService{
		oracle:   cfg.Oracle,
		renderer: cfg.Renderer,
		schema:   extraction.QuotationSchema,
		logger:   logger,
	}
}

// Generate runs the full pipeline for one user request and returns the
// rendered document. Every failure is returned as a typed domain error;
// monetary fields are never defaulted on the way through.
func (s *QuotationService) Generate(ctx context.Context, userText string, action Action) (*Document, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, domain.NewValidationError("user_input", "is required")
	}

	record, err := s.Extract(ctx, userText)
	if err != nil {
		return nil, err
	}

	doc, err := s.render(record, action)
	if err != nil {
		s.logger.ErrorContext(ctx, "rendering quotation failed",
			slog.String("quotation_number", record.QuotationNumber),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "generated quotation",
		slog.String("quotation_number", record.QuotationNumber),
		slog.String("customer_id", record.CustomerID),
		slog.String("client", record.Client),
		slog.Int("items", len(record.Items)),
		slog.String("grand_total", record.GrandTotal.String()),
		slog.String("action", string(action)),
	)

	return doc, nil
}

// Extract runs the pipeline up to the canonical record without rendering.
func (s *QuotationService) Extract(ctx context.Context, userText string) (*domain.QuotationRecord, error) {
	prompt, err := extraction.BuildPrompt(s.schema, userText)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	s.logger.DebugContext(ctx, "querying extraction oracle",
		slog.String("schema", s.schema.Name),
		slog.Int("prompt_len", len(prompt)),
	)

	reply, err := s.oracle.Complete(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "oracle call failed", slog.Any("error", err))
		return nil, err
	}

	draft, err := extraction.DecodeDraft(s.schema, reply)
	if err != nil {
		s.logger.WarnContext(ctx, "oracle reply not parseable",
			slog.Int("reply_len", len(reply)),
			slog.Any("error", err),
		)
		return nil, err
	}

	record, err := domain.Reconcile(draft)
	if err != nil {
		s.logger.WarnContext(ctx, "oracle reply failed reconciliation",
			slog.Any("error", err),
		)
		return nil, err
	}

	return record, nil
}

// render hands the canonical record to the presentation adapter.
func (s *QuotationService) render(record *domain.QuotationRecord, action Action) (*Document, error) {
	switch action {
	case ActionDownload:
		pdf, err := s.renderer.RenderPDF(record)
		if err != nil {
			return nil, fmt.Errorf("rendering PDF: %w", err)
		}

		return &Document{
			ContentType: "application/pdf",
			Filename:    attachmentName(record.Client),
			Body:        pdf,
			Record:      record,
		}, nil

	case ActionPreview, "":
		html, err := s.renderer.RenderHTML(record)
		if err != nil {
			return nil, fmt.Errorf("rendering HTML: %w", err)
		}

		return &Document{
			ContentType: "text/html; charset=utf-8",
			Body:        []byte(html),
			Record:      record,
		}, nil

	default:
		return nil, domain.NewValidationError("action", "must be preview or download")
	}
}

// attachmentName builds the download filename from the client name.
func attachmentName(client string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, client)

	if name == "" {
		name = "client"
	}

	return name + "_quotation.pdf"
}
