package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/yieldpilot/yieldpilot/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Commands render their own error output before returning an
	// ExitError; anything else (flag parse errors, bad format) still
	// needs printing here.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	os.Exit(cli.GetExitCode(err))
}
