// Package repl is the line editor front end of the shell.
//
// Shell wraps a readline instance whose completion and highlighting read the
// command registry shared with the core. RunScript is the non-interactive
// counterpart used for piped input and command files.
package repl
