package main

import (
	"github.com/alecthomas/kong"

	"github.com/dimafomin/chef-site-backend/commands"
)

var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("chefsite"),
		kong.Description("Multilingual content backend for a sushi chef's site."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
