package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/vidgrab/backend/internal/config"
	"github.com/vidgrab/backend/internal/handlers"
	"github.com/vidgrab/backend/internal/httpserver"
	"github.com/vidgrab/backend/internal/logging"
	"github.com/vidgrab/backend/internal/middleware"
	"github.com/vidgrab/backend/internal/videos"
)

// Run bootstraps the vidgrab application.
func Run(ctx context.Context, args []string) error {
	root := newRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vidgrab",
		Short:         "Resolve social-media video URLs into downloadable renditions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "lambda",
			Short: "Run under the AWS Lambda runtime",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serveLambda(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "detect <url>...",
			Short: "Print the detected platform for each URL",
			Long:  "Print the detected platform for each URL.\n\nSupported platforms: " + supportedPlatformList(),
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return detect(cmd.OutOrStdout(), args)
			},
		},
	)

	return root
}

func setup() (config.Config, *slog.Logger, handlers.Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, handlers.Dependencies{}, err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	return cfg, logger, buildDependencies(cfg), nil
}

func serve(ctx context.Context) error {
	cfg, logger, deps, err := setup()
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	handlers.RegisterRoutes(router, deps)

	srv := httpserver.New(cfg.AppPort, router)

	logger.Info("starting http server", "port", cfg.AppPort, "metadataSource", cfg.MetadataSource)

	return srv.Run(ctx, logger)
}

func serveLambda(ctx context.Context) error {
	cfg, logger, deps, err := setup()
	if err != nil {
		return err
	}

	logger.Info("starting lambda handler", "metadataSource", cfg.MetadataSource)

	lambda.StartWithOptions(deps.DownloadHandler().HandleLambda, lambda.WithContext(ctx))
	return nil
}

func supportedPlatformList() string {
	platforms := videos.SupportedPlatforms()
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}

func detect(w io.Writer, urls []string) error {
	for _, raw := range urls {
		platform, ok := videos.DetectPlatform(raw)
		if !ok {
			if _, err := fmt.Fprintf(w, "%s\tunsupported\n", raw); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", raw, platform); err != nil {
			return err
		}
	}
	return nil
}
