// Command soql compiles declarative query documents into SOQL statements.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/soql/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	err := cmd.Execute()
	if err == nil {
		os.Exit(cli.ExitSuccess)
	}

	// Commands print their own formatted errors; cobra's flag and
	// argument errors are printed here.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}
	os.Exit(exitErr.Code)
}
