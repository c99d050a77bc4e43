package repl

import (
	"strings"
	"unicode"

	"github.com/chzyer/readline"

	"github.com/msto63/rair/internal/rcore/core"
)

// NameSource lists command names by prefix
type NameSource interface {
	Complete(prefix string) []string
}

// Completer completes the command word of a line. Arguments are left alone.
type Completer struct {
	names NameSource
}

var _ readline.AutoCompleter = (*Completer)(nil)

// NewCompleter creates a completer over names
func NewCompleter(names NameSource) *Completer {
	return &Completer{names: names}
}

// Do implements readline.AutoCompleter
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	typed := string(line[:pos])
	word := strings.TrimLeftFunc(typed, unicode.IsSpace)
	if strings.IndexFunc(word, unicode.IsSpace) >= 0 {
		return nil, 0
	}

	var candidates [][]rune
	for _, name := range c.names.Complete(word) {
		candidates = append(candidates, []rune(name[len(word):]+" "))
	}
	return candidates, len([]rune(word))
}

// Painter highlights the command word: known names in palette color 6,
// unknown ones in palette color 3.
type Painter struct {
	core *core.Core
}

var _ readline.Painter = (*Painter)(nil)

// NewPainter creates a painter using the palette of c
func NewPainter(c *core.Core) *Painter {
	return &Painter{core: c}
}

// Paint implements readline.Painter
func (p *Painter) Paint(line []rune, pos int) []rune {
	if !p.core.Color() {
		return line
	}

	text := string(line)
	start := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	end := strings.IndexFunc(text[start:], unicode.IsSpace)
	if end < 0 {
		end = len(text)
	} else {
		end += start
	}
	word := text[start:end]
	if word == "" {
		return line
	}

	color := 3
	if _, ok := p.core.Commands().Find(strings.TrimSuffix(word, "?")); ok {
		color = 6
	}
	return []rune(text[:start] + p.core.Paint(color, word) + text[end:])
}
