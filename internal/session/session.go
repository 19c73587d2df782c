package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"isynspec/internal/config"
	"isynspec/internal/fileutil"
	"isynspec/internal/synspec"
	"isynspec/internal/workdir"
)

// ErrNotInitialized reports file access before Init or after Close.
var ErrNotInitialized = errors.New("session not initialized")

// Session stages SYNSPEC exchange files into a working directory, reads and
// writes the typed records, and collects results back out on Close.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger
	dir    *workdir.Dir
}

// New constructs a session from configuration. Call Init before any file
// operation.
func New(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("session requires config")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{cfg: cfg, logger: logger}, nil
}

// Init resolves the working directory, acquires its lock if configured, and
// stages the configured input files into it.
func (s *Session) Init() error {
	if s.dir != nil {
		return nil
	}

	dir, err := workdir.Resolve(s.cfg.Workdir)
	if err != nil {
		return err
	}
	s.dir = dir
	s.logger.Info("session initialized",
		"workdir", dir.Path,
		"strategy", s.cfg.Workdir.Strategy,
		"temporary", dir.Temporary())

	if err := s.stageInputs(); err != nil {
		cleanupErr := dir.Cleanup()
		s.dir = nil
		return errors.Join(err, cleanupErr)
	}
	return nil
}

// Attach resolves the working directory like Init but skips input staging.
// Used when picking up a directory a previous run already populated.
func (s *Session) Attach() error {
	if s.dir != nil {
		return nil
	}
	dir, err := workdir.Resolve(s.cfg.Workdir)
	if err != nil {
		return err
	}
	s.dir = dir
	s.logger.Info("session attached", "workdir", dir.Path)
	return nil
}

// Dir returns the resolved working directory path.
func (s *Session) Dir() (string, error) {
	if s.dir == nil {
		return "", ErrNotInitialized
	}
	return s.dir.Path, nil
}

// Path resolves name inside the working directory.
func (s *Session) Path(name string) (string, error) {
	if s.dir == nil {
		return "", ErrNotInitialized
	}
	return s.dir.Join(name), nil
}

func (s *Session) stageInputs() error {
	for _, name := range s.cfg.Session.InputFiles {
		src, err := s.resolveInput(name)
		if err != nil {
			return err
		}
		if err := fileutil.CopyInto(s.dir.Path, src); err != nil {
			return err
		}
		s.logger.Debug("staged input file", "source", src)
	}
	return nil
}

// resolveInput locates an input file, trying the model directory for
// relative names before falling back to the process working directory.
func (s *Session) resolveInput(name string) (string, error) {
	if !filepath.IsAbs(name) && !strings.HasPrefix(name, "~") && s.cfg.Session.ModelDir != "" {
		candidate := filepath.Join(s.cfg.Session.ModelDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return config.ExpandPath(name)
}

// WriteControl writes the synthesis control parameters to name in the
// working directory.
func (s *Session) WriteControl(name string, ctl synspec.Control) error {
	return s.writeFile(name, func(f *os.File) error {
		return synspec.WriteControl(f, ctl)
	})
}

// ReadControl reads synthesis control parameters from name.
func (s *Session) ReadControl(name string) (synspec.Control, error) {
	var ctl synspec.Control
	err := s.readFile(name, func(f *os.File) error {
		var err error
		ctl, err = synspec.ReadControl(f)
		return err
	})
	return ctl, err
}

// WriteLineList writes an atomic line list to name in the working directory.
func (s *Session) WriteLineList(name string, lines []synspec.Line) error {
	return s.writeFile(name, func(f *os.File) error {
		return synspec.WriteLineList(f, lines)
	})
}

// ReadLineList reads an atomic line list from name.
func (s *Session) ReadLineList(name string) ([]synspec.Line, error) {
	var lines []synspec.Line
	err := s.readFile(name, func(f *os.File) error {
		var err error
		lines, err = synspec.ReadLineList(f)
		return err
	})
	return lines, err
}

// WriteAbundanceChanges writes abundance overrides to name in the working
// directory.
func (s *Session) WriteAbundanceChanges(name string, changes []synspec.AbundanceChange) error {
	return s.writeFile(name, func(f *os.File) error {
		return synspec.WriteAbundanceChanges(f, changes)
	})
}

// ReadAbundanceChanges reads abundance overrides from name.
func (s *Session) ReadAbundanceChanges(name string) ([]synspec.AbundanceChange, error) {
	var changes []synspec.AbundanceChange
	err := s.readFile(name, func(f *os.File) error {
		var err error
		changes, err = synspec.ReadAbundanceChanges(f)
		return err
	})
	return changes, err
}

// ReadSpectrum reads a computed spectrum from name.
func (s *Session) ReadSpectrum(name string) ([]synspec.SpectrumPoint, error) {
	var points []synspec.SpectrumPoint
	err := s.readFile(name, func(f *os.File) error {
		var err error
		points, err = synspec.ReadSpectrum(f)
		return err
	})
	return points, err
}

// WriteSpectrum writes a spectrum to name in the working directory.
func (s *Session) WriteSpectrum(name string, points []synspec.SpectrumPoint) error {
	return s.writeFile(name, func(f *os.File) error {
		return synspec.WriteSpectrum(f, points)
	})
}

// ReadEquivalentWidths reads per-interval equivalent width data from name.
func (s *Session) ReadEquivalentWidths(name string) ([]synspec.EquivalentWidthBin, error) {
	var bins []synspec.EquivalentWidthBin
	err := s.readFile(name, func(f *os.File) error {
		var err error
		bins, err = synspec.ReadEquivalentWidths(f)
		return err
	})
	return bins, err
}

// ReadModelInput reads the basic model parameters from name.
func (s *Session) ReadModelInput(name string) (synspec.ModelInput, error) {
	var model synspec.ModelInput
	err := s.readFile(name, func(f *os.File) error {
		var err error
		model, err = synspec.ReadModelInput(f)
		return err
	})
	return model, err
}

func (s *Session) writeFile(name string, write func(*os.File) error) error {
	if s.dir == nil {
		return ErrNotInitialized
	}
	path := s.dir.Join(name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

func (s *Session) readFile(name string, read func(*os.File) error) error {
	if s.dir == nil {
		return ErrNotInitialized
	}
	path := s.dir.Join(name)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// Collect copies the configured output files into the output directory,
// creating it if needed. Missing output files are skipped with a warning.
func (s *Session) Collect() error {
	if s.dir == nil {
		return ErrNotInitialized
	}
	outDir := s.cfg.Session.OutputDir
	if outDir == "" || len(s.cfg.Session.OutputFiles) == 0 {
		return nil
	}
	expanded, err := config.ExpandPath(outDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(expanded, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, name := range s.cfg.Session.OutputFiles {
		src := s.dir.Join(name)
		if _, err := os.Stat(src); err != nil {
			s.logger.Warn("output file missing, skipping", "file", name)
			continue
		}
		if err := fileutil.CopyFile(src, filepath.Join(expanded, filepath.Base(name))); err != nil {
			return fmt.Errorf("collect %s: %w", name, err)
		}
		s.logger.Debug("collected output file", "file", name)
	}
	return nil
}

// Close collects output files and releases the working directory. It is safe
// to call more than once.
func (s *Session) Close() error {
	if s.dir == nil {
		return nil
	}
	collectErr := s.Collect()
	cleanupErr := s.dir.Cleanup()
	s.dir = nil
	s.logger.Info("session closed")
	return errors.Join(collectErr, cleanupErr)
}
