// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package backup snapshots files into a backup root before they are modified
// and copies them back on request.
package backup

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/pkg/clean"
	"github.com/walteh/webclean/pkg/status"
)

// DefaultRoot is the backup directory used when none is configured
const DefaultRoot = "backup"

// ErrNoBackup is returned by Restore when nothing was backed up for a path
var ErrNoBackup = errors.Base("no backup found")

// 🗂️ Policy decides where a backup lands when names collide
type Policy string

const (
	// PolicyOverwrite keeps only the base name; same-named files overwrite each other
	PolicyOverwrite Policy = "overwrite"
	// PolicySuffix appends .1, .2, ... to names already used in this run
	PolicySuffix Policy = "suffix"
	// PolicyMirror keeps the path relative to the walk root
	PolicyMirror Policy = "mirror"
)

// ParsePolicy converts a configuration string into a Policy. Empty means overwrite.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyOverwrite, nil
	case PolicyOverwrite, PolicySuffix, PolicyMirror:
		return p, nil
	default:
		return "", errors.Errorf("%w: backup policy %q", clean.ErrInvalidChoice, s)
	}
}

// Option configures a Service
type Option func(*Service)

// WithPolicy sets the collision policy
func WithPolicy(p Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithWalkRoot sets the directory mirror paths are relative to
func WithWalkRoot(dir string) Option {
	return func(s *Service) {
		s.walkRoot = filepath.Clean(dir)
	}
}

// 💾 Service copies originals into the backup root
type Service struct {
	files    status.FileManager
	root     string
	walkRoot string
	policy   Policy

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	used  map[string]int
}

// New creates a backup service writing under root
func New(files status.FileManager, root string, opts ...Option) *Service {
	if root == "" {
		root = DefaultRoot
	}
	s := &Service{
		files:  files,
		root:   filepath.Clean(root),
		policy: PolicyOverwrite,
		locks:  make(map[string]*sync.Mutex),
		used:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the backup directory
func (s *Service) Root() string {
	return s.root
}

// Policy returns the collision policy in use
func (s *Service) Policy() Policy {
	return s.policy
}

// Excludes reports whether path lives inside the backup root and so must not
// be walked
func (s *Service) Excludes(path string) bool {
	return within(s.root, path)
}

// 📸 Backup copies path into the backup root and returns the backup location.
// Copies to the same destination are serialized.
func (s *Service) Backup(ctx context.Context, path string) (string, error) {
	dest := s.destination(path, true)

	lock := s.lockFor(dest)
	lock.Lock()
	defer lock.Unlock()

	if err := s.files.CreateDir(ctx, filepath.Dir(dest)); err != nil {
		return "", errors.Errorf("creating backup directory: %w", err)
	}

	if err := s.files.CopyFile(ctx, path, dest); err != nil {
		return "", errors.Errorf("backing up %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Str("backup", dest).
		Str("policy", string(s.policy)).
		Msg("backup created")

	return dest, nil
}

// ♻️ Restore copies the backup of path over path and returns where it came from.
// Under the suffix policy the first backup of a name is the one restored.
func (s *Service) Restore(ctx context.Context, path string) (string, error) {
	src := s.destination(path, false)

	exists, err := s.files.FileExists(ctx, src)
	if err != nil {
		return "", errors.Errorf("checking backup existence: %w", err)
	}
	if !exists {
		return "", errors.Errorf("%w for %s", ErrNoBackup, path)
	}

	lock := s.lockFor(src)
	lock.Lock()
	defer lock.Unlock()

	if err := s.files.CopyFile(ctx, src, path); err != nil {
		return "", errors.Errorf("restoring %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Str("backup", src).Msg("backup restored")
	return src, nil
}

// destination computes the backup path for path. claim records the name as
// used for the suffix policy.
func (s *Service) destination(path string, claim bool) string {
	base := filepath.Base(path)

	switch s.policy {
	case PolicyMirror:
		if s.walkRoot != "" {
			if rel, err := filepath.Rel(s.walkRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.Join(s.root, rel)
			}
		}
		return filepath.Join(s.root, base)
	case PolicySuffix:
		if !claim {
			return filepath.Join(s.root, base)
		}
		s.mu.Lock()
		n := s.used[base]
		s.used[base] = n + 1
		s.mu.Unlock()
		if n > 0 {
			base += "." + strconv.Itoa(n)
		}
		return filepath.Join(s.root, base)
	default:
		return filepath.Join(s.root, base)
	}
}

func (s *Service) lockFor(dest string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[dest]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[dest] = lock
	}
	return lock
}

// within reports whether path is dir or below it
func within(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
