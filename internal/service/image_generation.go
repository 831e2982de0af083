package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/basel-ax/imagegen/internal/config"
	"github.com/basel-ax/imagegen/internal/domain"
	"github.com/rs/zerolog"
)

// ImageGenerationService wraps a domain.ImageGenerator with configured defaults
type ImageGenerationService struct {
	generator domain.ImageGenerator
	config    *config.Config
	logger    zerolog.Logger
}

// NewImageGenerationService creates a new image generation service
func NewImageGenerationService(cfg *config.Config, generator domain.ImageGenerator, logger zerolog.Logger) *ImageGenerationService {
	return &ImageGenerationService{
		generator: generator,
		config:    cfg,
		logger:    logger,
	}
}

// GenerateImage implements the image generation request.
// Size and quality are passed through unchecked; the service is the authority on them.
func (s *ImageGenerationService) GenerateImage(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error) {
	// Set default values if not provided
	if req.Model == "" {
		req.Model = s.config.DefaultModel
	}
	if req.Size == "" {
		req.Size = s.config.DefaultSize
	}
	if req.Quality == "" {
		req.Quality = s.config.DefaultQuality
	}
	if req.Style == "" {
		req.Style = s.config.DefaultStyle
	}
	if req.NumImages == 0 {
		req.NumImages = s.config.DefaultNumImages
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	resp, err := s.generator.GenerateImage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	if len(resp.Images) == 0 {
		return nil, fmt.Errorf("failed to generate image: %w", domain.ErrEmptyResult)
	}

	for i, img := range resp.Images {
		if img.RevisedPrompt != "" {
			s.logger.Debug().Int("index", i).Str("revised_prompt", img.RevisedPrompt).Msg("prompt revised by service")
		}
	}

	return resp, nil
}

// GenerateImageURL generates images and returns the URL of the first one
func (s *ImageGenerationService) GenerateImageURL(ctx context.Context, req domain.ImageGenerationRequest) (string, error) {
	resp, err := s.GenerateImage(ctx, req)
	if err != nil {
		return "", err
	}

	url := resp.Images[0].URL
	if url == "" {
		return "", fmt.Errorf("failed to generate image: %w: first result has no url", domain.ErrEmptyResult)
	}

	return url, nil
}

func validate(req domain.ImageGenerationRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("%w: prompt must not be empty", domain.ErrRequest)
	}
	if strings.TrimSpace(req.Model) == "" {
		return fmt.Errorf("%w: model must not be empty", domain.ErrRequest)
	}
	if req.NumImages < 1 {
		return fmt.Errorf("%w: image count must be at least 1, got %d", domain.ErrRequest, req.NumImages)
	}
	return nil
}
