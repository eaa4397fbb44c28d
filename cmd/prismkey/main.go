package main

import (
	"fmt"
	"os"

	"github.com/prism-network/gprism/internal/flags"
	"github.com/urfave/cli/v2"
)

// Git SHA1 commit hash of the release (set via linker flags)
var gitCommit = ""
var gitDate = ""

var app *cli.App

func init() {
	app = flags.NewApp(gitCommit, gitDate, "a Prism system-action and state tool")
	app.Commands = []*cli.Command{
		commandDeposit,
		commandWithdraw,
		commandSetFee,
		commandSetExempt,
		commandTiers,
		commandInspect,
	}
}

// Commonly used command line flags.
var jsonFlag = &cli.BoolFlag{
	Name:  "json",
	Usage: "output compact JSON instead of human-readable format",
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
