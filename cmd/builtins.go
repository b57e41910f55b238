package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"josephlewis.net/minsh/core/interp"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands the interpreter handles itself.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// cd and exit act on interpreter state and never run as programs.
		builtins := []string{
			interp.BuiltinCd.String(),
			interp.BuiltinExit.String(),
		}
		for name := range interp.AllBuiltins {
			builtins = append(builtins, name)
		}

		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
