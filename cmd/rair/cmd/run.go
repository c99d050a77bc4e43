package cmd

import (
	"os"

	"github.com/spf13/cobra"

	rairerror "github.com/msto63/rair/foundation/core/error"
	"github.com/msto63/rair/internal/repl"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a file of shell commands",
	Long: `Run executes every line of a file as if it was typed into the shell.
Blank lines and lines starting with # are skipped; "quit" ends the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return rairerror.Wrap(err, "cannot open command file").
				WithCode(rairerror.CodeNotFound).
				WithDetail("path", args[0])
		}
		defer f.Close()

		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		return repl.RunScript(s.core, f)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
