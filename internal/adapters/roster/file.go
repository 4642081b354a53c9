// Package roster loads the initial zoo population from configuration files.
package roster

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen/zoo-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.RosterSource  = (*FileSource)(nil)
	_ ports.HealthChecker = (*FileSource)(nil)
)

// FileSource reads a YAML roster from disk. An empty path or a missing file
// yields an empty roster.
type FileSource struct {
	path string
}

// NewFileSource creates a roster source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements ports.RosterSource.
func (s *FileSource) Load(ctx context.Context) (*ports.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.path == "" {
		return &ports.Roster{}, nil
	}

	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return &ports.Roster{}, nil
	}

	k := koanf.New(".")

	if err := k.Load(file.Provider(s.path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", s.path, err)
	}

	var r ports.Roster

	if err := k.Unmarshal("", &r); err != nil {
		return nil, fmt.Errorf("decoding roster %s: %w", s.path, err)
	}

	return &r, nil
}

// Name implements ports.HealthChecker.
func (s *FileSource) Name() string {
	return "roster"
}

// Check implements ports.HealthChecker. A roster file that exists must stay
// readable so a restart can reseed the zoo.
func (s *FileSource) Check(_ context.Context) error {
	if s.path == "" {
		return nil
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("roster file: %w", err)
	}

	return f.Close()
}
