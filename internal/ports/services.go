// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrOracle, ErrParse, etc.)
//   - Methods represent business operations, not CRUD operations
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/quotemint/quotegen/internal/domain"
)

// Oracle is the extraction oracle: a text-completion service that, given a
// prompt, returns free-form text expected to contain a JSON object. The
// oracle is untrusted; callers must treat every reply as adversarial input
// requiring validation.
//
// Implementations must respect context deadlines — the oracle call is the
// only blocking operation in the pipeline and may have unbounded latency
// upstream. Failures are reported as domain.OracleError.
type Oracle interface {
	// Complete sends one prompt and returns the raw reply text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// QuotationRenderer turns a canonical quotation record into a rendered
// document. Rendering fidelity is the adapter's concern; the record shape is
// the contract.
type QuotationRenderer interface {
	// RenderHTML returns the quotation as a standalone HTML document.
	RenderHTML(record *domain.QuotationRecord) (string, error)

	// RenderPDF returns the quotation as a binary PDF document.
	RenderPDF(record *domain.QuotationRecord) ([]byte, error)
}
