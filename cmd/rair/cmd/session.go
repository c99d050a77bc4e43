package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/term"

	rairlog "github.com/msto63/rair/foundation/core/log"
	"github.com/msto63/rair/internal/rcore/builtins"
	"github.com/msto63/rair/internal/rcore/core"
	"github.com/msto63/rair/internal/rcore/rio"
	"github.com/msto63/rair/pkg/core/config"
)

// session bundles everything a front end needs
type session struct {
	cfg     *config.Config
	core    *core.Core
	logger  *rairlog.Logger
	closers []io.Closer
}

func newSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}
	s.logger = s.newLogger()

	var palette []string
	if len(cfg.Colors.Palette) > 0 {
		palette = cfg.Colors.Palette
	}

	c, err := core.New(core.Options{
		IO:         rio.New(),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Logger:     s.logger,
		Palette:    palette,
		Color:      colorEnabled(cfg.Colors.Mode),
		MaxNesting: cfg.Shell.MaxNesting,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	builtins.Load(c)
	s.core = c
	s.closers = append(s.closers, c)

	s.logger.Debug("Session started", rairlog.Fields{
		"config_data_dir": cfg.General.DataDir,
		"frontend":        cfg.Shell.Frontend,
		"commands":        c.Commands().Len(),
	})
	return s, nil
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if historyFile != "" {
		cfg.Shell.HistoryFile = historyFile
	}
	if noColor {
		cfg.Colors.Mode = "never"
	}
	return cfg, nil
}

// newLogger logs to the log file, or to stderr at debug level with
// --verbose. Every entry carries the session id.
func (s *session) newLogger() *rairlog.Logger {
	level, _ := rairlog.ParseLevel(s.cfg.Log.Level)
	format, _ := rairlog.ParseFormat(s.cfg.Log.Format)

	var output io.Writer = os.Stderr
	if verbose {
		level = rairlog.LevelDebug
	} else if f, err := openLogFile(s.cfg.Log.File); err == nil {
		output = f
		s.closers = append(s.closers, f)
	}

	logger := rairlog.NewWithConfig(rairlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   "rair",
	}).WithField("session", uuid.NewString())

	rairlog.SetDefault(logger)
	return logger
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// Close releases the session resources in reverse order
func (s *session) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
