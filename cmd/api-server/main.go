package main

import (
	"github.com/alecthomas/kong"
)

type Context struct {
	Debug bool
}

var CLI struct {
	Debug bool `help:"Force debug-level console logging"`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the HTTP API server"`
	Migrate MigrateCmd `cmd:"" help:"Apply database migrations and exit"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cocktailhub"),
		kong.Description("cocktailhub serves the cocktail catalog API."),
	)
	err := ctx.Run(&Context{Debug: CLI.Debug})
	ctx.FatalIfErrorf(err)
}
