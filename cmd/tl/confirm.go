package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// confirm prompts for a yes/no answer on the command's input stream. An
// empty line or EOF yields the default.
func confirm(cmd *cobra.Command, def bool) (bool, error) {
	options := "(y/N)"
	if def {
		options = "(Y/n)"
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		fmt.Fprintf(cmd.ErrOrStderr(), "Okay? %s ", options)

		line, err := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))

		switch answer {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if err != nil {
			return def, nil
		}
	}
}
