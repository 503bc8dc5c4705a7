// Package main is the xrspace command itself.
package main

import (
	"os"

	"go.viam.com/xrspace/cli"
	"go.viam.com/xrspace/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.Global().Error(err)
		os.Exit(1)
	}
}
