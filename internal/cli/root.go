package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/basel-ax/imagegen/internal/config"
	"github.com/basel-ax/imagegen/internal/domain"
	"github.com/basel-ax/imagegen/internal/infrastructure/openai"
	"github.com/basel-ax/imagegen/internal/logx"
	"github.com/basel-ax/imagegen/internal/secret"
	"github.com/basel-ax/imagegen/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Exit codes returned by Run.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitAuthentication = 2
	ExitRequest        = 3
	ExitTransport      = 4
	ExitEmptyResult    = 5
)

type generateOptions struct {
	model    string
	size     string
	quality  string
	style    string
	count    int
	baseURL  string
	timeout  time.Duration
	envFile  string
	logLevel string
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps an error onto a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrAuthentication):
		return ExitAuthentication
	case errors.Is(err, domain.ErrRequest):
		return ExitRequest
	case errors.Is(err, domain.ErrTransport):
		return ExitTransport
	case errors.Is(err, domain.ErrEmptyResult):
		return ExitEmptyResult
	default:
		return ExitFailure
	}
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:           "imagegen [flags] <prompt...>",
		Short:         "Generate an image from a text prompt and print its URL",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts, logOut)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.model, "model", "m", "", "model identifier (default from IMAGE_MODEL or dall-e-3)")
	fs.StringVarP(&opts.size, "size", "s", "", "output size, e.g. 1024x1024")
	fs.StringVarP(&opts.quality, "quality", "q", "", "quality tier: standard or hd (hd is dall-e-3 only; default from IMAGE_QUALITY or hd)")
	fs.StringVar(&opts.style, "style", "", "optional style, e.g. vivid or natural")
	fs.IntVarP(&opts.count, "count", "n", 0, "number of images to generate")
	fs.StringVar(&opts.baseURL, "base-url", "", "API base URL (default from IMAGE_API_BASE_URL)")
	fs.DurationVar(&opts.timeout, "timeout", 0, "request timeout, 0 for none")
	fs.StringVar(&opts.envFile, "env-file", "", "env file to load instead of ./.env")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, none")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, opts generateOptions, logOut io.Writer) error {
	flags := cmd.Flags()
	if opts.logLevel != "" {
		logx.Configure(opts.logLevel)
	}
	logger := logx.New(logOut).With().Str("run_id", uuid.NewString()).Logger()

	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.logLevel == "" {
		logx.Configure(cfg.LogLevel)
	}

	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = opts.timeout
	}
	if flags.Changed("count") && opts.count < 1 {
		return fmt.Errorf("%w: image count must be at least 1, got %d", domain.ErrRequest, opts.count)
	}

	logger.Debug().
		Str("api_key", secret.Mask(cfg.APIKey)).
		Str("base_url", cfg.BaseURL).
		Dur("timeout", cfg.RequestTimeout).
		Msg("configuration loaded")

	client := openai.NewClient(cfg.APIKey,
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		openai.WithLogger(logger),
	)
	svc := service.NewImageGenerationService(cfg, client, logger)

	req := domain.ImageGenerationRequest{
		Prompt:    strings.Join(args, " "),
		Model:     opts.model,
		Size:      opts.size,
		Quality:   opts.quality,
		Style:     opts.style,
		NumImages: opts.count,
	}

	logger.Info().Msg("Generating image...")
	url, err := svc.GenerateImageURL(cmd.Context(), req)
	if err != nil {
		return err
	}
	logger.Info().Msg("Image generated successfully")

	fmt.Fprintf(cmd.OutOrStdout(), "Generated image URL: %s\n", url)
	return nil
}
