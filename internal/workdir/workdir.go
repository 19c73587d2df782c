package workdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"isynspec/internal/config"
)

// LockFileName is created inside a locked working directory to serialize
// access across processes.
const LockFileName = ".isynspec.lock"

const userDataDir = "~/.local/share/isynspec/work"

// ErrBusy reports that another process holds the working directory lock.
var ErrBusy = errors.New("working directory is already in use")

// Dir is a resolved working directory. Temporary directories are removed on
// Cleanup unless preservation was requested.
type Dir struct {
	Path string

	lock     *flock.Flock
	temp     bool
	preserve bool
}

// Resolve materializes a working directory according to cfg.Strategy and
// acquires its lock when cfg.Lock is set.
func Resolve(cfg config.Workdir) (*Dir, error) {
	path, temp, err := resolvePath(cfg)
	if err != nil {
		return nil, err
	}

	dir := &Dir{Path: path, temp: temp, preserve: cfg.PreserveTemp}
	if cfg.Lock {
		lock := flock.New(filepath.Join(path, LockFileName))
		ok, err := lock.TryLock()
		if err != nil {
			dir.removeTemp()
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			dir.removeTemp()
			return nil, fmt.Errorf("%w: %s", ErrBusy, path)
		}
		dir.lock = lock
	}
	return dir, nil
}

func resolvePath(cfg config.Workdir) (path string, temp bool, err error) {
	switch cfg.Strategy {
	case config.StrategyCurrent, "":
		path, err = os.Getwd()
		if err != nil {
			return "", false, fmt.Errorf("resolve current directory: %w", err)
		}
		return path, false, nil

	case config.StrategySpecified:
		if cfg.Path == "" {
			return "", false, errors.New("specified strategy requires a path")
		}
		path, err = config.ExpandPath(cfg.Path)
		if err != nil {
			return "", false, err
		}
		if err = os.MkdirAll(path, 0o755); err != nil {
			return "", false, fmt.Errorf("create working directory: %w", err)
		}
		return path, false, nil

	case config.StrategyTemporary:
		path = filepath.Join(os.TempDir(), "isynspec-"+uuid.NewString())
		if err = os.MkdirAll(path, 0o755); err != nil {
			return "", false, fmt.Errorf("create temporary directory: %w", err)
		}
		return path, true, nil

	case config.StrategyUserData:
		path, err = config.ExpandPath(userDataDir)
		if err != nil {
			return "", false, err
		}
		if err = os.MkdirAll(path, 0o755); err != nil {
			return "", false, fmt.Errorf("create user data directory: %w", err)
		}
		return path, false, nil

	default:
		return "", false, fmt.Errorf("unknown working directory strategy %q", cfg.Strategy)
	}
}

// Temporary reports whether the directory was freshly created for this run.
func (d *Dir) Temporary() bool {
	return d.temp
}

// Join returns the path of name inside the working directory.
func (d *Dir) Join(name string) string {
	return filepath.Join(d.Path, name)
}

// Cleanup releases the lock and removes the directory if it is temporary and
// preservation was not requested.
func (d *Dir) Cleanup() error {
	if d.lock != nil {
		if err := d.lock.Unlock(); err != nil {
			return fmt.Errorf("release lock: %w", err)
		}
		d.lock = nil
	}
	if d.temp && !d.preserve {
		if err := os.RemoveAll(d.Path); err != nil {
			return fmt.Errorf("remove temporary directory: %w", err)
		}
	}
	return nil
}

func (d *Dir) removeTemp() {
	if d.temp && !d.preserve {
		_ = os.RemoveAll(d.Path)
	}
}
