// Package main provides the trigopt CLI: generate, optimize, report on, and
// rank keyboard layouts against a trigram frequency corpus.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// Data directories used by the CLI, relative to the current working
// directory.
const (
	layoutDir  = "data/layouts/"
	corpusDir  = "data/corpus/"
	weightsDir = "data/weights/"
)

// appFlagsMap centralizes flag definitions shared across subcommands, the
// same way keycraft's cmd-level flags.go does.
var appFlagsMap = map[string]cli.Flag{
	"corpus": &cli.StringFlag{
		Name:    "corpus",
		Aliases: []string{"c"},
		Usage:   "Corpus file or directory to score layouts against (relative to data/corpus).",
		Value:   "default.txt",
	},
	"weights-file": &cli.StringFlag{
		Name:    "weights-file",
		Aliases: []string{"wf"},
		Usage:   "TOML weights file (relative to data/weights). Overridden by --weights.",
	},
	"weights": &cli.StringFlag{
		Name:    "weights",
		Aliases: []string{"w"},
		Usage:   "Weight overrides, e.g. \"type:Sfb=-10,finger:RP=-1\".",
	},
	"geometry": &cli.StringFlag{
		Name:    "geometry",
		Aliases: []string{"g"},
		Usage:   "Keyboard geometry: rowstag, iso, anglemod, ortho, colstag.",
		Value:   "rowstag",
	},
}

func flagsSlice(keys ...string) []cli.Flag {
	flags := make([]cli.Flag, 0, len(keys))
	for _, k := range keys {
		if f, ok := appFlagsMap[k]; ok {
			flags = append(flags, f)
		}
	}
	return flags
}

func main() {
	cmd := &cli.Command{
		Name:  "trigopt",
		Usage: "generate and rank trigram-optimized keyboard layouts",
		Commands: []*cli.Command{
			generateCommand,
			reportCommand,
			rankCommand,
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
