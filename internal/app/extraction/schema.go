// Package extraction turns free-text user requests into structured quotation
// drafts: it builds the oracle prompt from a schema descriptor and isolates
// the JSON object embedded in the oracle's free-form reply.
package extraction

import (
	"strings"
	"text/template"
)

// Schema describes the structured output expected from the oracle.
// The original system carried several near-identical prompt variants; they
// are expressed here as one template parameterized by a schema descriptor.
type Schema struct {
	// Name identifies the schema version for logging.
	Name string

	// EnvelopeKey is the required top-level JSON key wrapping the payload.
	EnvelopeKey string

	// Format is the exact JSON shape the oracle is instructed to emit,
	// including field names and example values.
	Format string
}

// QuotationSchema is the schema for full quotation extraction: client
// details, line items and monetary aggregates under "quotation_details".
var QuotationSchema = Schema{
	Name:        "quotation/v1",
	EnvelopeKey: "quotation_details",
	Format: `{
  "quotation_details": {
    "client": "Full Name",
    "company": "Company Name",
    "address": "Full Address",
    "phone": "+91-XXXXXXXXXX",
    "items": [
      {
        "item_name": "Item A",
        "quantity": 10,
        "unit_price": 50,
        "total": 500
      }
    ],
    "item_total": 500,
    "tax": 90.0,
    "grand_total": 590.0
  }
}`,
}

// promptTemplate is the fixed instruction template. User text is injected as
// template data, never spliced into the template source, so delimiter
// characters in the input cannot corrupt the template structure.
var promptTemplate = template.Must(template.New("prompt").Parse(
	`You are an intelligent assistant helping generate a quotation.
Your task is to extract structured details from the user's request in the exact JSON format described below.

From the input, extract:

- client: the client's full name
- company: the client's company name
- address: the full address
- phone: the phone number
- items: list of items (each item includes item_name, quantity, unit_price, total)
- item_total: sum of all item totals
- tax: 18% GST on item_total
- grand_total: item_total + tax

Rules:
- Do NOT add any explanation, comments, or extra text.
- Do NOT wrap the output in markdown code fences.
- Format strictly as valid JSON.

Expected JSON output format:

{{.Format}}

Now extract the information from this input:

Input: {{.Input}}
`))

// BuildPrompt produces the oracle prompt for the given schema and user text.
// Pure function of its inputs.
func BuildPrompt(schema Schema, userText string) (string, error) {
	var b strings.Builder

	err := promptTemplate.Execute(&b, struct {
		Format string
		Input  string
	}{
		Format: schema.Format,
		Input:  sanitizeInput(userText),
	})
	if err != nil {
		return "", err
	}

	return b.String(), nil
}

// sanitizeInput neutralizes markers that could break the reply out of the
// instructed format: code-fence backticks become plain quotes and control
// characters other than newlines and tabs are dropped.
func sanitizeInput(text string) string {
	text = strings.ReplaceAll(text, "`", "'")

	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if r < 0x20 && r != '\n' && r != '\t' {
			continue
		}

		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}
