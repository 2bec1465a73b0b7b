// Command nfgrapher builds, validates and serves nf-grapher scores.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dukex/nfgrapher/pkg/codec"
	"github.com/dukex/nfgrapher/pkg/log"
	"github.com/dukex/nfgrapher/pkg/otelhelper"
	"github.com/dukex/nfgrapher/pkg/registry"
	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultPort = 9092
	serviceName = "nfgrapher"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "nfgrapher: loading .env:", err)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "nfgrapher:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "nfgrapher",
		Usage:                 "Build, validate and serve nf-grapher scores",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "otel",
				Usage:   "Export traces over OTLP/HTTP (configured by OTEL_EXPORTER_OTLP_* variables)",
				Sources: cli.EnvVars("OTEL_ENABLED"),
			},
		},
		Commands: []*cli.Command{
			ValidateCommand(),
			FmtCommand(),
			KindsCommand(),
			ExampleCommand(),
			ServeCommand(),
		},
	}
}

func stdout(command *cli.Command) io.Writer {
	if w := command.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

func stderr(command *cli.Command) io.Writer {
	if w := command.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}

func newLogger(command *cli.Command) *slog.Logger {
	log.Setup(stderr(command), command.String("log-level"))

	return log.WithModule(serviceName)
}

func newRegistry(logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultNodes()

	return reg
}

// newTracer returns an exporting tracer when --otel is set and a no-op one
// otherwise. The returned shutdown func is never nil.
//
// nolint:ireturn
func newTracer(ctx context.Context, command *cli.Command, logger *slog.Logger) (trace.Tracer, otelhelper.ShutdownFunc) {
	noop := func(context.Context) error { return nil }

	if !command.Bool("otel") {
		return otelhelper.NoopTracer(), noop
	}

	tracer, shutdown, err := otelhelper.NewTracer(ctx, serviceName)
	if err != nil {
		logger.WarnContext(ctx, "Failed to initialize tracer, tracing disabled", "error", err)

		return otelhelper.NoopTracer(), noop
	}

	return tracer, shutdown
}

// readInput reads path, or standard input when path is "-".
func readInput(command *cli.Command, path string) ([]byte, error) {
	if path == "-" {
		r := command.Root().Reader
		if r == nil {
			r = os.Stdin
		}

		return io.ReadAll(r)
	}

	return os.ReadFile(path)
}

// decodeInput decodes data as YAML when path ends in .yaml or .yml and as
// JSON otherwise.
func decodeInput(path string, data []byte) (*score.Score, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec.DecodeYAML(data)
	default:
		return codec.Decode(data)
	}
}
