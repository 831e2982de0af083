package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/basel-ax/imagegen/internal/domain"
	"github.com/rs/zerolog"
	goopenai "github.com/sashabaranov/go-openai"
)

// defaultBaseURL is used when the client is built without WithBaseURL;
// config.DefaultBaseURL is the same endpoint for configured runs.
const defaultBaseURL = "https://api.openai.com/v1"

// Client represents an OpenAI-compatible image generation API client
type Client struct {
	api        *goopenai.Client
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another OpenAI-compatible endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new image generation API client.
// The default HTTP client has no timeout; callers bound requests through the context.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	cfg := goopenai.DefaultConfig(c.apiKey)
	cfg.BaseURL = strings.TrimRight(c.baseURL, "/")
	cfg.HTTPClient = c.httpClient
	c.api = goopenai.NewClientWithConfig(cfg)

	return c
}

// GenerateImage implements the image generation request
func (c *Client) GenerateImage(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error) {
	if c.apiKey == "" {
		return nil, &domain.APIError{Kind: domain.ErrAuthentication, Message: "missing API key"}
	}

	c.logger.Debug().
		Str("base_url", c.baseURL).
		Str("model", req.Model).
		Str("size", req.Size).
		Str("quality", req.Quality).
		Int("n", req.NumImages).
		Msg("sending image generation request")

	resp, err := c.api.CreateImage(ctx, goopenai.ImageRequest{
		Prompt:  req.Prompt,
		Model:   req.Model,
		N:       req.NumImages,
		Quality: req.Quality,
		Size:    req.Size,
		Style:   req.Style,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	images := make([]domain.GeneratedImage, 0, len(resp.Data))
	for _, item := range resp.Data {
		images = append(images, domain.GeneratedImage{
			URL:           item.URL,
			RevisedPrompt: item.RevisedPrompt,
		})
	}

	c.logger.Debug().Int("images", len(images)).Msg("image generation response received")

	return &domain.ImageGenerationResponse{
		Created: resp.Created,
		Images:  images,
	}, nil
}

// classifyError maps a go-openai error onto the domain error kinds
func classifyError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return &domain.APIError{
			Kind:       kindForStatus(apiErr.HTTPStatusCode),
			StatusCode: apiErr.HTTPStatusCode,
			Type:       apiErr.Type,
			Message:    apiErr.Message,
		}
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return &domain.APIError{
			Kind:       kindForStatus(reqErr.HTTPStatusCode),
			StatusCode: reqErr.HTTPStatusCode,
			Message:    reqErr.HTTPStatus,
		}
	}

	// Anything without an HTTP status never got a usable answer from the service:
	// dial, TLS, context cancellation, or an undecodable body.
	return fmt.Errorf("%w: failed to send request: %w", domain.ErrTransport, err)
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.ErrAuthentication
	case status >= http.StatusBadRequest:
		return domain.ErrRequest
	default:
		return domain.ErrTransport
	}
}
