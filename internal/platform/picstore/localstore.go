package picstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
)

// LocalStore keeps objects as flat files under a root directory. Used for
// development and as the cheapest substitutable backend in tests.
type LocalStore struct {
	log  *logger.Logger
	root string
}

func NewLocalStore(log *logger.Logger, cfg Config) (*LocalStore, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.Backend != BackendLocal {
		return nil, &ConfigError{Code: ConfigErrorInvalidBackend, Backend: string(cfg.Backend)}
	}
	if err := os.MkdirAll(cfg.RootDir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{
		log:  log.With("store", "LocalStore"),
		root: cfg.RootDir,
	}, nil
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *LocalStore) URLFor(name string) string {
	return "file://" + s.path(name)
}

func classifyFS(err error) Result {
	switch {
	case err == nil:
		return success("")
	case errors.Is(err, fs.ErrNotExist):
		return failure(OutcomeNotFound, err.Error())
	case errors.Is(err, fs.ErrPermission):
		return failure(OutcomePermissionDenied, err.Error())
	case errors.Is(err, fs.ErrExist):
		return failure(OutcomeAlreadyExists, err.Error())
	case errors.Is(err, syscall.ENOSPC):
		return failure(OutcomeStorageFull, err.Error())
	default:
		return failure(OutcomeUnknownError, err.Error())
	}
}

func (s *LocalStore) Upload(ctx context.Context, name string, data []byte, contentType string) Result {
	if err := ValidateName(name); err != nil {
		return invalidPath(err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return classifyFS(err)
	}
	return success(s.URLFor(name))
}

func (s *LocalStore) Download(ctx context.Context, name string) ([]byte, Result) {
	if err := ValidateName(name); err != nil {
		return nil, invalidPath(err)
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, classifyFS(err)
	}
	return data, success(s.URLFor(name))
}

func (s *LocalStore) Delete(ctx context.Context, name string) Result {
	if err := ValidateName(name); err != nil {
		return invalidPath(err)
	}
	if err := os.Remove(s.path(name)); err != nil {
		return classifyFS(err)
	}
	return success("")
}

func (s *LocalStore) Move(ctx context.Context, oldName, newName string) Result {
	if err := ValidateName(oldName); err != nil {
		return invalidPath(err)
	}
	if err := ValidateName(newName); err != nil {
		return invalidPath(err)
	}
	if err := os.Rename(s.path(oldName), s.path(newName)); err != nil {
		return classifyFS(err)
	}
	return success(s.URLFor(newName))
}

func (s *LocalStore) Copy(ctx context.Context, oldName, newName string) Result {
	data, res := s.Download(ctx, oldName)
	if !res.OK() {
		return res
	}
	return s.Upload(ctx, newName, data, "")
}

func (s *LocalStore) Exists(ctx context.Context, name string) (bool, Result) {
	if err := ValidateName(name); err != nil {
		return false, invalidPath(err)
	}
	_, err := os.Stat(s.path(name))
	if err == nil {
		return true, success("")
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, success("")
	}
	return false, classifyFS(err)
}

func (s *LocalStore) Info(ctx context.Context, name string) (*ObjectInfo, Result) {
	if err := ValidateName(name); err != nil {
		return nil, invalidPath(err)
	}
	st, err := os.Stat(s.path(name))
	if err != nil {
		return nil, classifyFS(err)
	}
	return &ObjectInfo{
		Name:    name,
		Size:    st.Size(),
		Updated: st.ModTime().UTC().Truncate(time.Second),
	}, success(s.URLFor(name))
}

func (s *LocalStore) List(ctx context.Context, pattern string, limit int) ([]string, Result) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, classifyFS(err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if pattern != "" && !strings.HasPrefix(e.Name(), pattern) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, success("")
}
