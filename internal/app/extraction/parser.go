package extraction

import (
	"encoding/json"
	"strings"

	"github.com/quotemint/quotegen/internal/domain"
)

// fenceMarkers are the code-fence styles oracles wrap replies in despite
// being told not to. Both the markdown triple backtick and the triple quote
// seen in some model families are handled.
var fenceMarkers = []string{"```", "'''"}

// ExtractJSON locates the first balanced JSON object embedded in an oracle
// reply and returns it verbatim. Surrounding prose and code-fence markers are
// tolerated; anything less than one decodable object is an error, never an
// empty result.
//
// The balanced-object scan runs on the raw reply first. It skips braces inside
// string literals, so fence sequences appearing in string values cannot
// truncate the object. Fence stripping is only a fallback for replies where
// the fence itself confuses the scan.
func ExtractJSON(text string) (json.RawMessage, error) {
	if candidate, ok := firstBalancedObject(text); ok && json.Valid([]byte(candidate)) {
		return json.RawMessage(candidate), nil
	}

	stripped := stripFences(text)

	candidate, ok := firstBalancedObject(stripped)
	if !ok {
		return nil, domain.NewParseError(domain.ParseNoObjectFound,
			"no balanced JSON object in reply", text)
	}

	if !json.Valid([]byte(candidate)) {
		return nil, domain.NewParseError(domain.ParseInvalidJSON,
			"brace-balanced region is not valid JSON", text)
	}

	return json.RawMessage(candidate), nil
}

// DecodeDraft extracts and decodes a quotation draft from an oracle reply.
// The envelope key of the schema wraps the draft payload.
func DecodeDraft(schema Schema, text string) (*domain.QuotationDraft, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, domain.NewParseError(domain.ParseInvalidJSON, err.Error(), text)
	}

	payload, ok := envelope[schema.EnvelopeKey]
	if !ok {
		// Some replies skip the envelope and emit the payload directly.
		payload = raw
	}

	var draft domain.QuotationDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, domain.NewParseError(domain.ParseInvalidJSON, err.Error(), text)
	}

	return &draft, nil
}

// stripFences removes a leading and trailing code-fence marker, with an
// optional language tag after the opening marker.
func stripFences(s string) string {
	s = strings.TrimSpace(s)

	for _, marker := range fenceMarkers {
		if !strings.HasPrefix(s, marker) {
			continue
		}

		s = strings.TrimSpace(strings.TrimPrefix(s, marker))

		// Language tag such as "json" or "html" on the opening fence.
		if i := strings.IndexAny(s, "{\n"); i > 0 {
			tag := strings.TrimSpace(s[:i])
			if tag != "" && isLanguageTag(tag) {
				s = strings.TrimSpace(s[i:])
			}
		}

		if i := strings.LastIndex(s, marker); i >= 0 {
			s = strings.TrimSpace(s[:i])
		}

		break
	}

	return s
}

// isLanguageTag reports whether the token looks like a fence language tag.
func isLanguageTag(tag string) bool {
	for _, r := range tag {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}

	return true
}

// firstBalancedObject returns the substring spanning the first '{' and its
// matching '}', accounting for nested braces and braces inside string
// literals. ok is false when no balanced object exists.
func firstBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
