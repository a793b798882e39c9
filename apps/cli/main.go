package main

import (
	"fmt"
	"os"

	"github.com/trezcool/msms/core"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	cli := commandLine{
		conf:   conf,
		in:     os.Stdin,
		out:    os.Stdout,
		logOut: os.Stderr,
	}
	err = cli.run(os.Args)
	cli.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
