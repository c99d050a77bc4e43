package repl

import (
	"bufio"
	"io"
	"strings"

	"github.com/msto63/rair/internal/rcore/core"
)

// RunScript feeds every line of r to c until the input ends or a command
// asks to quit. Blank lines and lines starting with '#' are skipped.
func RunScript(c *core.Core, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c.Exec(line)
		if c.ShouldQuit() {
			break
		}
	}
	return scanner.Err()
}
