// Package render is the presentation adapter: it turns canonical quotation
// records into HTML previews and PDF downloads. It implements
// ports.QuotationRenderer.
package render

import (
	"log/slog"
)

// Config contains configuration for the renderer.
type Config struct {
	// CurrencySymbol prefixes every monetary value, e.g. "₹".
	CurrencySymbol string

	// FontPath and BoldFontPath optionally point at UTF-8 TTF fonts for
	// the PDF output. When unset the PDF falls back to the built-in
	// Helvetica font and an ASCII currency marker, since the core fonts
	// cannot encode symbols such as "₹".
	FontPath     string
	BoldFontPath string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Renderer renders quotation documents.
type Renderer struct {
	currency     string
	fontPath     string
	boldFontPath string
	logger       *slog.Logger
}

// New creates a renderer. Defaults the currency symbol to "₹" and the logger
// to slog.Default().
func New(cfg Config) *Renderer {
	currency := cfg.CurrencySymbol
	if currency == "" {
		currency = "₹"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Renderer{
		currency:     currency,
		fontPath:     cfg.FontPath,
		boldFontPath: cfg.BoldFontPath,
		logger:       logger,
	}
}
