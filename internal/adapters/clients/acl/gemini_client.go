package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quotemint/quotegen/internal/adapters/clients"
	"github.com/quotemint/quotegen/internal/domain"
)

// GeminiClientConfig contains configuration for the oracle client.
type GeminiClientConfig struct {
	// Client is the HTTP client to use for requests.
	// Its BaseURL should point at the generative language API endpoint.
	Client *clients.Client

	// Model is the model identifier, e.g. "gemini-2.0-flash".
	Model string

	// ServiceName identifies the oracle in errors and health checks.
	ServiceName string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// GeminiClient implements ports.Oracle against the Google generative
// language REST API. It translates the API's candidate envelope to the plain
// reply text the pipeline expects and maps transport failures to domain
// oracle errors.
type GeminiClient struct {
	client      *clients.Client
	model       string
	serviceName string
	logger      *slog.Logger
}

// NewGeminiClient creates a new oracle client adapter.
// Panics if Client is nil or Model is empty. Defaults logger to
// slog.Default() if nil.
func NewGeminiClient(cfg GeminiClientConfig) *GeminiClient {
	if cfg.Client == nil {
		panic("GeminiClient: Client is required")
	}

	if cfg.Model == "" {
		panic("GeminiClient: Model is required")
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "gemini"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GeminiClient{
		client:      cfg.Client,
		model:       cfg.Model,
		serviceName: serviceName,
		logger:      logger,
	}
}

// generateRequest is the external request DTO. Never exposed outside the ACL.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the external response DTO.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// Complete sends one prompt and returns the raw reply text.
// Implements ports.Oracle.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding oracle request: %w", err)
	}

	path := c.generatePath()
	c.logger.DebugContext(ctx, "calling extraction oracle",
		slog.String("model", c.model),
		slog.Int("prompt_len", len(prompt)),
	)

	resp, err := c.client.Post(ctx, path, bytes.NewReader(body))
	if err != nil {
		return "", mapOracleError(nil, err, c.serviceName)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "oracle API error",
			slog.Int("status_code", resp.StatusCode),
		)
		return "", mapOracleError(resp, nil, c.serviceName)
	}

	var external generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&external); err != nil {
		return "", domain.NewOracleError(c.serviceName, "decoding completion response: "+err.Error())
	}

	reply := c.replyText(&external)
	if reply == "" {
		return "", domain.NewOracleError(c.serviceName, "empty completion")
	}

	c.logger.DebugContext(ctx, "oracle replied", slog.Int("reply_len", len(reply)))

	return reply, nil
}

// replyText flattens the first candidate's parts into the reply string.
func (c *GeminiClient) replyText(resp *generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}

	return strings.TrimSpace(b.String())
}

// generatePath builds the generateContent path for the configured model.
func (c *GeminiClient) generatePath() string {
	return "/v1beta/models/" + c.model + ":generateContent"
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *GeminiClient) Name() string {
	return c.serviceName
}

// Check performs a health check by fetching the configured model's metadata.
// Implements ports.HealthChecker.
func (c *GeminiClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, "/v1beta/models/"+c.model)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("oracle API returned status %d", resp.StatusCode)
	}

	return nil
}
