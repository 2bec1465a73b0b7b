package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
)

func KindsCommand() *cli.Command {
	return &cli.Command{
		Name:      "kinds",
		Aliases:   []string{"k"},
		Usage:     "List the built-in node kinds, or print the config schema of one",
		ArgsUsage: "[KIND]",
		Action: func(_ context.Context, command *cli.Command) error {
			reg := newRegistry(newLogger(command))
			w := stdout(command)

			if command.NArg() > 0 {
				kind := command.Args().First()

				schema, ok := reg.Schema(kind)
				if !ok {
					return fmt.Errorf("unknown kind %q", kind)
				}

				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")

				return enc.Encode(schema)
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tNAME\tPARAMS")

			for _, spec := range reg.Kinds() {
				params := make([]string, 0, len(spec.Params))
				for _, p := range spec.Params {
					params = append(params, p.Name)
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\n", spec.Kind, spec.Name, strings.Join(params, ","))
			}

			return tw.Flush()
		},
	}
}
