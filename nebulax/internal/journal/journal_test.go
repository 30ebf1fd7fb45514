package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NebulaX/nebulax/nebulax/common/logging"
	"github.com/NebulaX/nebulax/nebulax/internal/network"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		filepath.Join("ignition", "deployments", "chain-421614"),
		Dir(DefaultRoot, network.ArbitrumSepoliaChainId))
}

func TestStore(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "chain-421614")
	store := NewStore(dir, logging.Nop())

	addresses, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, addresses)

	token := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	nebulaX := common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")

	require.NoError(t, store.Save(map[string]common.Address{"NebulaXModule#NebulaX": nebulaX}))
	require.NoError(t, store.Save(map[string]common.Address{"NebulaXModule#NebXToken": token}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	require.Equal(t, `{
  "NebulaXModule#NebXToken": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
  "NebulaXModule#NebulaX": "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
}
`, string(data))

	addresses, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, map[string]common.Address{
		"NebulaXModule#NebXToken": token,
		"NebulaXModule#NebulaX":   nebulaX,
	}, addresses)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestStoreCorrupted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStore(dir, logging.Nop())
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	_, err := store.Load()
	require.Error(t, err)
	require.Error(t, store.Save(nil))
}
