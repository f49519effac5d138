package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const tokenFilename = "token.json"

// FileStore is a file-based token store for CLI usage.
// The token is stored as a JSON file in a config directory.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a new file-based token store.
// If baseDir is empty, defaults to $XDG_CONFIG_HOME/erdcanvas/ (falling
// back to ~/.config/erdcanvas/).
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		cfg, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get config dir: %w", err)
		}
		baseDir = filepath.Join(cfg, "erdcanvas")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &FileStore{path: filepath.Join(baseDir, tokenFilename)}, nil
}

// Get retrieves the stored token, or ErrNoToken if the file is absent.
func (s *FileStore) Get(ctx context.Context) (Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Token{}, ErrNoToken
		}
		return Token{}, fmt.Errorf("read token file: %w", err)
	}

	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return Token{}, fmt.Errorf("parse token: %w", err)
	}
	return tok, nil
}

// Set stores the token with owner-only permissions.
func (s *FileStore) Set(ctx context.Context, tok Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.CreatedAt.IsZero() {
		tok.CreatedAt = time.Now()
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Clear removes the stored token.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// Path returns the token file path.
func (s *FileStore) Path() string {
	return s.path
}

var _ Store = (*FileStore)(nil)
