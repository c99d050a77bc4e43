// Package core implements the execution context of the shell.
//
// A Core owns the command registry, the location cursor, the address
// interpretation mode and the output sinks. Front ends feed it lines through
// Exec; command handlers receive it in Cmd.Run and may dispatch further
// commands on it, up to the configured nesting depth.
//
// Nothing dispatched through a Core ends the process. Unknown commands,
// duplicate registrations and argument errors are written to the error sink
// in the "Error: <title>\n<detail>" layout and logged with their error code.
package core
