package admin

import (
	"alvant-portal/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// TokenKey is the single key the bearer token is stored under.
const TokenKey = "admin_token"

// KV is one key-value namespace, such as a browser's local or session storage.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// CredentialStore persists the admin bearer token in exactly one of two places.
type CredentialStore interface {
	// Read returns "" when no token is stored.
	Read() (string, error)
	// WriteDurable stores a token that survives restarts.
	WriteDurable(token string) error
	// WriteEphemeral stores a token for the current session only.
	WriteEphemeral(token string) error
	// Clear removes the token from both places.
	Clear() error
}

// DualStore implements CredentialStore over a durable and a session KV.
// Every write removes the token from the other namespace under the same lock,
// so the two never disagree.
type DualStore struct {
	mu      sync.Mutex
	durable KV
	session KV
}

func NewDualStore(durable, session KV) *DualStore {
	return &DualStore{durable: durable, session: session}
}

func (s *DualStore) Read() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, kv := range []KV{s.durable, s.session} {
		tok, ok, err := kv.Get(TokenKey)
		if err != nil {
			return "", err
		}
		if ok && tok != "" {
			return tok, nil
		}
	}
	return "", nil
}

func (s *DualStore) WriteDurable(token string) error {
	return s.write(s.durable, s.session, token)
}

func (s *DualStore) WriteEphemeral(token string) error {
	return s.write(s.session, s.durable, token)
}

func (s *DualStore) write(into, other KV, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := other.Delete(TokenKey); err != nil {
		return err
	}
	return into.Set(TokenKey, token)
}

func (s *DualStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.durable.Delete(TokenKey), s.session.Delete(TokenKey))
}

// MemoryKV is a process-local KV.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FileKV keeps a JSON object in a file readable only by its owner.
type FileKV struct {
	mu   sync.Mutex
	path string
}

func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, _, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, _, err := f.load()
	if err != nil {
		return err
	}
	data[key] = value
	return f.save(data)
}

func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, corrupt, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok && !corrupt {
		return nil
	}
	delete(data, key)
	if len(data) == 0 {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", f.path, err)
		}
		return nil
	}
	return f.save(data)
}

// load reports corrupt when the file exists but does not decode. Its content is
// then treated as empty, so the next write or delete replaces it.
func (f *FileKV) load() (data map[string]string, corrupt bool, err error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", f.path, err)
	}

	data = map[string]string{}
	if len(raw) == 0 {
		return data, false, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Log.Warn("ignoring unreadable credential file", "path", f.path, "error", err)
		return map[string]string{}, true, nil
	}
	return data, false, nil
}

// save writes through a temp file and rename so a crash never leaves half a file.
func (f *FileKV) save(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(f.path), err)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".kv-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
