package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/msto63/rair/pkg/core/version"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)

	got := strings.TrimSpace(buf.String())
	if want := version.Get().String(); got != want {
		t.Errorf("version output = %q, want %q", got, want)
	}
}
