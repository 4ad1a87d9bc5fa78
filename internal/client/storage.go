package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"campus-market/internal/api"
)

// IdentitySlot 持久化身分的檔名
const IdentitySlot = "currentUser"

// Identity 登入後保存的使用者資料與 token
type Identity struct {
	User      api.UserResponse `json:"user"`
	Token     string           `json:"access_token"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// IdentityStore 保存目前登入的身分，Load 沒有資料時回傳 nil, nil
type IdentityStore interface {
	Load() (*Identity, error)
	Save(*Identity) error
	Clear() error
}

// FileStore 把身分存成 <Dir>/currentUser.json
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// DefaultConfigDir 優先使用 MARKET_CONFIG_DIR
func DefaultConfigDir() (string, error) {
	if dir := os.Getenv("MARKET_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "campus-market"), nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.Dir, IdentitySlot+".json")
}

func (s *FileStore) Load() (*Identity, error) {
	data, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("parse %s: %w", IdentitySlot, err)
	}
	return &id, nil
}

func (s *FileStore) Save(id *Identity) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
