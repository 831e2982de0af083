package service

import (
	"context"
	"errors"
	"testing"

	"github.com/basel-ax/imagegen/internal/config"
	"github.com/basel-ax/imagegen/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	resp  *domain.ImageGenerationResponse
	err   error
	calls int
	last  domain.ImageGenerationRequest
}

func (f *fakeGenerator) GenerateImage(_ context.Context, req domain.ImageGenerationRequest) (*domain.ImageGenerationResponse, error) {
	f.calls++
	f.last = req
	return f.resp, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		APIKey:           "sk-test",
		DefaultModel:     "dall-e-3",
		DefaultSize:      "1024x1024",
		DefaultQuality:   "hd",
		DefaultNumImages: 1,
	}
}

func TestGenerateImageURL_FirstResult(t *testing.T) {
	gen := &fakeGenerator{resp: &domain.ImageGenerationResponse{Images: []domain.GeneratedImage{
		{URL: "https://example.test/img1.png"},
		{URL: "https://example.test/img2.png"},
	}}}
	svc := NewImageGenerationService(testConfig(), gen, zerolog.Nop())

	url, err := svc.GenerateImageURL(context.Background(), domain.ImageGenerationRequest{Prompt: "a red circle", NumImages: 2})
	require.NoError(t, err)
	require.Equal(t, "https://example.test/img1.png", url)
	require.Equal(t, 1, gen.calls)
	require.Equal(t, 2, gen.last.NumImages)
}

func TestGenerateImage_AppliesDefaults(t *testing.T) {
	gen := &fakeGenerator{resp: &domain.ImageGenerationResponse{Images: []domain.GeneratedImage{{URL: "https://example.test/a.png"}}}}
	cfg := testConfig()
	cfg.DefaultStyle = "vivid"
	svc := NewImageGenerationService(cfg, gen, zerolog.Nop())

	_, err := svc.GenerateImage(context.Background(), domain.ImageGenerationRequest{Prompt: "a red circle"})
	require.NoError(t, err)
	require.Equal(t, domain.ImageGenerationRequest{
		Prompt:    "a red circle",
		Model:     "dall-e-3",
		Size:      "1024x1024",
		Quality:   "hd",
		Style:     "vivid",
		NumImages: 1,
	}, gen.last)
}

func TestGenerateImage_ExplicitValuesWin(t *testing.T) {
	gen := &fakeGenerator{resp: &domain.ImageGenerationResponse{Images: []domain.GeneratedImage{{URL: "https://example.test/a.png"}}}}
	svc := NewImageGenerationService(testConfig(), gen, zerolog.Nop())

	_, err := svc.GenerateImage(context.Background(), domain.ImageGenerationRequest{
		Prompt: "a red circle", Model: "dall-e-2", Size: "256x256", Quality: "standard", NumImages: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "dall-e-2", gen.last.Model)
	require.Equal(t, "256x256", gen.last.Size)
	require.Equal(t, "standard", gen.last.Quality)
	require.Equal(t, 3, gen.last.NumImages)
}

func TestGenerateImage_EmptyResult(t *testing.T) {
	gen := &fakeGenerator{resp: &domain.ImageGenerationResponse{}}
	svc := NewImageGenerationService(testConfig(), gen, zerolog.Nop())

	url, err := svc.GenerateImageURL(context.Background(), domain.ImageGenerationRequest{Prompt: "a red circle"})
	require.ErrorIs(t, err, domain.ErrEmptyResult)
	require.Empty(t, url)
}

func TestGenerateImageURL_BlankURL(t *testing.T) {
	gen := &fakeGenerator{resp: &domain.ImageGenerationResponse{Images: []domain.GeneratedImage{{RevisedPrompt: "x"}}}}
	svc := NewImageGenerationService(testConfig(), gen, zerolog.Nop())

	_, err := svc.GenerateImageURL(context.Background(), domain.ImageGenerationRequest{Prompt: "a red circle"})
	require.ErrorIs(t, err, domain.ErrEmptyResult)
}

func TestGenerateImage_Validation(t *testing.T) {
	cases := map[string]domain.ImageGenerationRequest{
		"empty prompt":   {Prompt: "   "},
		"negative count": {Prompt: "a red circle", NumImages: -1},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			gen := &fakeGenerator{}
			svc := NewImageGenerationService(testConfig(), gen, zerolog.Nop())

			_, err := svc.GenerateImage(context.Background(), req)
			require.ErrorIs(t, err, domain.ErrRequest)
			require.Zero(t, gen.calls)
		})
	}
}

func TestGenerateImage_PropagatesKinds(t *testing.T) {
	for _, kind := range []error{domain.ErrAuthentication, domain.ErrRequest, domain.ErrTransport} {
		gen := &fakeGenerator{err: &domain.APIError{Kind: kind, Message: "boom"}}
		svc := NewImageGenerationService(testConfig(), gen, zerolog.Nop())

		_, err := svc.GenerateImageURL(context.Background(), domain.ImageGenerationRequest{Prompt: "a red circle"})
		require.ErrorIs(t, err, kind)
		require.False(t, errors.Is(err, domain.ErrEmptyResult))
	}
}
