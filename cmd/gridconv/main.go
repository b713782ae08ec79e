package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tzneal/gridref/internal/config"
	"github.com/tzneal/gridref/internal/convert"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: gridconv [coordinate ...]\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Converts each coordinate, or each line of stdin, between lat/lon, UTM and MGRS.\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Examples: \"48.8582, 2.2945\", \"31 N 448251 5411932\", \"31U DQ 48251 11932\".\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Environment: GRIDCONV_ENV, GRIDCONV_PRECISION (1-5), GRIDCONV_ELLIPSOID (wgs84, grs80).\n\n")
		flag.PrintDefaults()
	}
	geoJSON := flag.Bool("geojson", false, "write a GeoJSON FeatureCollection of the MGRS squares instead of text")
	flag.Parse()

	os.Exit(run(flag.Args(), *geoJSON))
}

func run(args []string, geoJSON bool) int {
	// Stop reading input on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)
	logger.DebugContext(ctx, "configuration loaded",
		"ellipsoid", cfg.EllipsoidName, "precision", cfg.Precision)

	var in io.Reader = os.Stdin
	if len(args) > 0 {
		in = strings.NewReader(strings.Join(args, "\n"))
	}

	conv := convert.NewConverter(logger, cfg.Ellipsoid, cfg.Precision)
	runConv := conv.Run
	if geoJSON {
		runConv = conv.RunGeoJSON
	}
	failed, err := runConv(ctx, in, os.Stdout)
	if err != nil {
		logger.ErrorContext(ctx, "conversion stopped", "error", err)
		return 2
	}
	if failed > 0 {
		logger.InfoContext(ctx, "some coordinates failed to convert", "failed", failed)
		return 1
	}
	return 0
}

// setupLogger initializes and returns a logger based on the environment provided.
// Logs are written to stderr, stdout carries the results.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
