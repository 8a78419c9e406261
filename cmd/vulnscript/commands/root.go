// Package commands wires the vulnscript CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "vulnscript",
	Short: "Interpreter for VulnScript vulnerability test scripts",
	Long: `vulnscript runs VulnScript (.vts) vulnerability test scripts and
reports the outcome of every top-level statement. Knowledge-base items
recorded by a script can be kept in memory or persisted to a database.`,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("vulnscript %s\n", version))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
