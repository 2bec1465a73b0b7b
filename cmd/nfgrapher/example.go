package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukex/nfgrapher/pkg/codec"
	"github.com/dukex/nfgrapher/pkg/score"
	cli "github.com/urfave/cli/v3"
)

func ExampleCommand() *cli.Command {
	return &cli.Command{
		Name:      "example",
		Aliases:   []string{"e"},
		Usage:     "Print a built-in example score, or list them",
		ArgsUsage: "[NAME]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stable-ids",
				Usage: "Use sequential ids instead of random UUIDs",
			},
			&cli.IntFlag{
				Name:  "indent",
				Usage: "Spaces per indentation level; 0 prints compact JSON",
				Value: 2,
			},
		},
		Action: func(_ context.Context, command *cli.Command) error {
			w := stdout(command)

			if command.NArg() == 0 {
				for _, name := range exampleNames() {
					if _, err := fmt.Fprintln(w, name); err != nil {
						return err
					}
				}

				return nil
			}

			name := command.Args().First()

			var gen score.IDGenerator
			if command.Bool("stable-ids") {
				gen = score.SequentialIDs(name)
			}

			s, err := buildExample(name, gen)
			if err != nil {
				return err
			}

			var opts []codec.Option
			if indent := command.Int("indent"); indent > 0 {
				opts = append(opts, codec.WithIndent(strings.Repeat(" ", indent)))
			}

			return codec.NewEncoder(w, opts...).Encode(s)
		},
	}
}
