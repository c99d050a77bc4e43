// Package builtins registers every command shipped with the shell.
package builtins

import (
	"github.com/msto63/rair/internal/rcore/core"
	rcoreio "github.com/msto63/rair/internal/rcore/io"
	"github.com/msto63/rair/internal/rcore/loc"
	"github.com/msto63/rair/internal/rcore/project"
	"github.com/msto63/rair/internal/rcore/script"
	"github.com/msto63/rair/internal/rcore/utils"
)

// Load registers the built-in commands on c. The order is fixed; it decides
// how equally close suggestions are ranked.
func Load(c *core.Core) {
	rcoreio.Register(c)
	loc.Register(c)
	utils.Register(c)
	script.Register(c)
	project.Register(c)
}
