package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/NebulaX/nebulax/nebulax/common/logging"
	"github.com/NebulaX/nebulax/nebulax/internal/network"
	"github.com/ethereum/go-ethereum/common"
)

const (
	DefaultRoot       = "ignition/deployments"
	AddressesFileName = "deployed_addresses.json"
)

// Dir returns the per-chain deployment directory, e.g. ignition/deployments/chain-421614.
func Dir(root string, chainId network.ChainId) string {
	return filepath.Join(root, "chain-"+chainId.String())
}

// Store keeps the addresses of deployed futures, keyed by future id.
type Store struct {
	path   string
	logger logging.Logger
}

func NewStore(dir string, logger logging.Logger) *Store {
	return &Store{
		path:   filepath.Join(dir, AddressesFileName),
		logger: logger,
	}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the recorded addresses. A missing file means nothing was deployed yet.
func (s *Store) Load() (map[string]common.Address, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]common.Address), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	addresses := make(map[string]common.Address)
	if err := json.Unmarshal(data, &addresses); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	s.logger.Debug().
		Str(logging.FieldPath, s.path).
		Int(logging.FieldCount, len(addresses)).
		Msg("Loaded deployed addresses")
	return addresses, nil
}

// Save merges addresses into the file. The file is replaced atomically.
func (s *Store) Save(addresses map[string]common.Address) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}
	for id, addr := range addresses {
		existing[id] = addr
	}

	// Checksummed, like hardhat-ignition writes them. encoding/json sorts the keys.
	out := make(map[string]string, len(existing))
	for id, addr := range existing {
		out[id] = addr.Hex()
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode addresses: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, AddressesFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	s.logger.Info().
		Str(logging.FieldPath, s.path).
		Int(logging.FieldCount, len(existing)).
		Msg("Deployed addresses saved")
	return nil
}
