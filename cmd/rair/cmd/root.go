package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/msto63/rair/internal/repl"
	"github.com/msto63/rair/internal/tui/shell"
)

var (
	cfgFile     string
	verbose     bool
	noColor     bool
	historyFile string
	useTUI      bool
	commands    []string
)

var rootCmd = &cobra.Command{
	Use:   "rair",
	Short: "rair - interactive reverse engineering shell",
	Long: `rair is an interactive shell for exploring binaries.

Type a command name followed by its arguments, "commands" to list every
command, or a command name followed by "?" to show its help.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printError("rair", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&historyFile, "history", "", "history file (default: <data dir>/history)")
	rootCmd.Flags().BoolVar(&useTUI, "tui", false, "start the full-screen front end")
	rootCmd.Flags().StringArrayVarP(&commands, "command", "c", nil, "run a command and exit (repeatable)")
}

func runShell(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	c := s.core
	if len(commands) > 0 {
		for _, line := range commands {
			c.Exec(line)
			if c.ShouldQuit() {
				break
			}
		}
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return repl.RunScript(c, os.Stdin)
	}

	if useTUI || s.cfg.Shell.Frontend == "tui" {
		return shell.Run(c, shell.Config{
			HistoryFile:  s.cfg.Shell.HistoryFile,
			HistoryLimit: s.cfg.Shell.HistoryLimit,
		})
	}

	sh, err := repl.New(c, repl.Config{
		HistoryFile:  s.cfg.Shell.HistoryFile,
		HistoryLimit: s.cfg.Shell.HistoryLimit,
		VimMode:      s.cfg.Shell.EditMode == "vi",
	})
	if err != nil {
		return err
	}
	defer sh.Close()

	return sh.Run(cmd.Context())
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
