package domain

import (
	"context"
)

// ImageGenerationRequest represents the parameters for image generation
type ImageGenerationRequest struct {
	Prompt    string
	Model     string
	Size      string
	Quality   string
	Style     string
	NumImages int
}

// GeneratedImage is a single result item returned by the service
type GeneratedImage struct {
	URL           string
	RevisedPrompt string
}

// ImageGenerationResponse represents the response from the image generation service
type ImageGenerationResponse struct {
	Created int64
	Images  []GeneratedImage
}

// ImageGenerator defines the interface for image generation backends
type ImageGenerator interface {
	// GenerateImage sends one generation request and returns every result item
	GenerateImage(ctx context.Context, req ImageGenerationRequest) (*ImageGenerationResponse, error)
}
