package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dukex/nfgrapher/pkg/codec"
	"github.com/dukex/nfgrapher/pkg/score"
	cli "github.com/urfave/cli/v3"
)

func FmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Rewrite a score document in canonical form",
		ArgsUsage: "FILE (use - for stdin)",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "indent",
				Usage: "Spaces per indentation level; 0 prints compact JSON",
				Value: 2,
			},
			&cli.BoolFlag{
				Name:  "yaml",
				Usage: "Print YAML instead of JSON",
			},
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write the result back to FILE instead of stdout",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.NArg() != 1 {
				return errors.New("fmt: exactly one FILE is required")
			}

			logger := newLogger(command)
			path := command.Args().First()

			data, err := readInput(command, path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			s, err := decodeInput(path, data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			out, err := render(s, command.Int("indent"), command.Bool("yaml"))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			if !command.Bool("write") || path == "-" {
				_, err := stdout(command).Write(out)

				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			logger.DebugContext(ctx, "Formatted score", "file", path, "graph", s.Graph.ID)

			return nil
		},
	}
}

// render encodes s as YAML, or as JSON indented by indent spaces, ending with
// a newline.
func render(s *score.Score, indent int, asYAML bool) ([]byte, error) {
	if asYAML {
		return codec.EncodeYAML(s)
	}

	var opts []codec.Option
	if indent > 0 {
		opts = append(opts, codec.WithIndent(strings.Repeat(" ", indent)))
	}

	out, err := codec.Encode(s, opts...)
	if err != nil {
		return nil, err
	}

	return append(out, '\n'), nil
}
