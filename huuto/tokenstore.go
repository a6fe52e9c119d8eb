package huuto

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TokenRecord is the persisted authentication state. Times are kept as the
// strings the API returned; the expiry is parsed on each read.
type TokenRecord struct {
	UserID    string `yaml:"userid"`
	Token     string `yaml:"token"`
	StartTime string `yaml:"start_time"`
	Expires   string `yaml:"expires"`
}

// TokenStore persists the token record between process invocations. Load is
// called before every authenticated request, Save only after a successful
// credential exchange.
type TokenStore interface {
	Load() (TokenRecord, error)
	Save(TokenRecord) error
}

// MemoryTokenStore keeps the token record in memory. The token is lost when
// the process exits, forcing a credential exchange on the next run.
type MemoryTokenStore struct {
	rec TokenRecord
}

// NewMemoryTokenStore returns an in-memory store seeded with rec.
func NewMemoryTokenStore(rec TokenRecord) *MemoryTokenStore {
	return &MemoryTokenStore{rec: rec}
}

// Load implements TokenStore.
func (s *MemoryTokenStore) Load() (TokenRecord, error) {
	return s.rec, nil
}

// Save implements TokenStore.
func (s *MemoryTokenStore) Save(rec TokenRecord) error {
	s.rec = rec
	return nil
}

// FileTokenStore persists the token record inside the client config file,
// leaving the other sections untouched. Writes go through a temp file and
// rename so a crash mid-write cannot truncate the config. Concurrent
// processes racing on the same file are not coordinated.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore returns a store backed by the config file at path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load implements TokenStore.
func (s *FileTokenStore) Load() (TokenRecord, error) {
	cfg, err := s.loadRaw()
	if err != nil {
		return TokenRecord{}, err
	}
	return cfg.Token, nil
}

// Save implements TokenStore.
func (s *FileTokenStore) Save(rec TokenRecord) error {
	cfg, err := s.loadRaw()
	if err != nil {
		return err
	}
	cfg.Token = rec

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing token record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing config file: %w", err)
	}

	return nil
}

// loadRaw parses the config file without environment variable expansion, so
// that saving the token record does not bake expanded secrets into the file.
func (s *FileTokenStore) loadRaw() (*Config, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // config path from trusted caller
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	return cfg, nil
}
