package main

import (
	"fmt"
	"os"

	"github.com/elimulabs/elimu"
	"github.com/elimulabs/elimu/core"
)

func main() {
	app := elimu.NewApp(core.NewConfig())
	cli := &commandLine{app: app}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
