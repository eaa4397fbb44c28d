package flags

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

const (
	LedgerCategory  = "LEDGER"
	BondCategory    = "BOND"
	VestingCategory = "VESTING"
	LoggingCategory = "LOGGING AND DEBUGGING"
	MiscCategory    = "MISC"
)

func init() {
	cli.HelpFlag.(*cli.BoolFlag).Category = MiscCategory
	cli.VersionFlag.(*cli.BoolFlag).Category = MiscCategory
}

// NewApp creates an app with sane defaults.
func NewApp(gitCommit, gitDate, usage string) *cli.App {
	app := cli.NewApp()
	app.EnableBashCompletion = true
	app.Name = filepath.Base(os.Args[0])
	app.Usage = usage
	app.Version = version(gitCommit, gitDate)
	app.Copyright = "Copyright 2024 The gprism Authors"
	return app
}

func version(gitCommit, gitDate string) string {
	v := "1.0.0"
	if len(gitCommit) >= 8 {
		v += "-" + gitCommit[:8]
	}
	if gitDate != "" {
		v += fmt.Sprintf(" (%s)", gitDate)
	}
	return v
}
