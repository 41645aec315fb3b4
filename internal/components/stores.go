package components

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/go-data-context/internal/identifier"
	"github.com/MKhiriev/go-data-context/internal/logger"
	"github.com/MKhiriev/go-data-context/internal/utils"
)

const (
	filePerm = 0o644
	// listSeparator joins the parts of listed keys.
	listSeparator = identifier.DefaultSeparator
)

// StoreBackend persists values under resource identifier keys.
type StoreBackend interface {
	Get(key identifier.Key) ([]byte, error)
	Set(key identifier.Key, value []byte) error
	Has(key identifier.Key) (bool, error)
	// List returns the parts of every stored key joined with ".", sorted.
	List() ([]string, error)
}

var (
	_ StoreBackend = (*FilesystemStoreBackend)(nil)
	_ StoreBackend = (*InMemoryStoreBackend)(nil)
)

func validateParts(key identifier.Key) ([]string, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: nil key", ErrInvalidKey)
	}

	parts := key.Parts()
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: key %s has no parts", ErrInvalidKey, key)
	}
	for _, p := range parts {
		if p == "" || p == "." || p == ".." || strings.ContainsAny(p, `/\`) {
			return nil, fmt.Errorf("%w: part %q of key %s", ErrInvalidKey, p, key)
		}
	}

	return parts, nil
}

// ── Filesystem ──────────────────────────────────────────────────────────────

var defaultFilesystemStoreConfig = FilesystemStoreConfig{FileExtension: ".json"}

// FilesystemStoreConfig holds the keyword arguments of
// FilesystemStoreBackend.
type FilesystemStoreConfig struct {
	// BaseDirectory is where values are written. A relative directory is
	// resolved against RootDirectory.
	BaseDirectory string `mapstructure:"base_directory"`
	RootDirectory string `mapstructure:"root_directory"`
	// FileExtension is appended to every file name. A missing leading dot
	// is added.
	FileExtension string `mapstructure:"file_extension"`
}

// Validate implements instantiate.Validator.
func (c *FilesystemStoreConfig) Validate() error {
	if c.BaseDirectory == "" {
		return errors.New("base_directory is required")
	}
	return nil
}

// FilesystemStoreBackend stores each value in its own file. The key parts
// form the directory path below the base directory.
type FilesystemStoreBackend struct {
	dir       string
	extension string

	logger *logger.Logger
}

// NewFilesystemStoreBackend creates the base directory when needed.
func NewFilesystemStoreBackend(cfg FilesystemStoreConfig, log *logger.Logger) (*FilesystemStoreBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	dir := cfg.BaseDirectory
	if !filepath.IsAbs(dir) && cfg.RootDirectory != "" {
		dir = filepath.Join(cfg.RootDirectory, dir)
	}
	if err := utils.MakeDirs(dir); err != nil {
		return nil, err
	}

	ext := cfg.FileExtension
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	log.Debug().Str("directory", dir).Msg("filesystem store ready")

	return &FilesystemStoreBackend{dir: dir, extension: ext, logger: log}, nil
}

// Directory returns the resolved base directory.
func (s *FilesystemStoreBackend) Directory() string {
	return s.dir
}

func (s *FilesystemStoreBackend) path(key identifier.Key) (string, error) {
	parts, err := validateParts(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{s.dir}, parts...)...) + s.extension, nil
}

func (s *FilesystemStoreBackend) Get(key identifier.Key) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}

	return data, nil
}

func (s *FilesystemStoreBackend) Set(key identifier.Key, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err = utils.MakeDirs(filepath.Dir(path)); err != nil {
		return err
	}
	if err = os.WriteFile(path, value, filePerm); err != nil {
		return fmt.Errorf("error writing %q: %w", path, err)
	}

	s.logger.Debug().Str("key", key.String()).Str("path", path).Msg("value stored")
	return nil
}

func (s *FilesystemStoreBackend) Has(key identifier.Key) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking %q: %w", path, err)
	}

	return !info.IsDir(), nil
}

func (s *FilesystemStoreBackend) List() ([]string, error) {
	var keys []string

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, s.extension) {
			return nil
		}

		rel, err := filepath.Rel(s.dir, strings.TrimSuffix(path, s.extension))
		if err != nil {
			return err
		}
		keys = append(keys, strings.Join(strings.Split(rel, string(filepath.Separator)), listSeparator))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing %q: %w", s.dir, err)
	}

	slices.Sort(keys)
	return keys, nil
}

// ── In memory ───────────────────────────────────────────────────────────────

// InMemoryStoreBackend keeps values in a map. It is safe for concurrent use.
type InMemoryStoreBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewInMemoryStoreBackend() *InMemoryStoreBackend {
	return &InMemoryStoreBackend{values: make(map[string][]byte)}
}

func memoryKey(key identifier.Key) (string, error) {
	parts, err := validateParts(key)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, listSeparator), nil
}

func (s *InMemoryStoreBackend) Get(key identifier.Key) ([]byte, error) {
	k, err := memoryKey(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return slices.Clone(value), nil
}

func (s *InMemoryStoreBackend) Set(key identifier.Key, value []byte) error {
	k, err := memoryKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values[k] = slices.Clone(value)
	s.mu.Unlock()

	return nil
}

func (s *InMemoryStoreBackend) Has(key identifier.Key) (bool, error) {
	k, err := memoryKey(key)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	_, ok := s.values[k]
	s.mu.RUnlock()

	return ok, nil
}

func (s *InMemoryStoreBackend) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
