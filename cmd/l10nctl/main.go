package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	l10n "github.com/goliatone/go-l10n-dashboard/pkg/dashboard"
	"github.com/goliatone/go-l10n-dashboard/pkg/config"
)

type cli struct {
	Output string `short:"o" enum:"table,json,yaml" default:"table" help:"Output format (table, json, yaml)."`

	Projects  projectsCmd  `cmd:"" help:"List projects and manage the selected project."`
	Features  featuresCmd  `cmd:"" help:"List the features of the selected project."`
	Languages languagesCmd `cmd:"" help:"List the languages of the selected project."`
	Stats     statsCmd     `cmd:"" help:"Show completion statistics."`
	Search    searchCmd    `cmd:"" help:"Search translations."`
	Export    exportCmd    `cmd:"" help:"Export translations as CSV."`
	Import    importCmd    `cmd:"" help:"Import a CSV file into a feature."`
	Translate translateCmd `cmd:"" name:"ai-translate" help:"Machine-translate missing values."`
}

// runtime is what every subcommand receives from Run.
type runtime struct {
	app *l10n.App
	out io.Writer
	fmt string
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Description("Command line client for the localization API."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	cfg, err := config.LoadConfig()
	ctx.FatalIfErrorf(err)

	app, err := l10n.New(context.Background(), cfg)
	ctx.FatalIfErrorf(err)
	defer app.Close()

	err = ctx.Run(&runtime{app: app, out: os.Stdout, fmt: root.Output})
	if err != nil {
		fmt.Fprintln(os.Stderr, "l10nctl:", err)
	}
	ctx.FatalIfErrorf(err)
}
