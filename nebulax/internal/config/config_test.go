package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/NebulaX/nebulax/nebulax/internal/network"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Well-known hardhat/anvil development key #0.
const (
	testKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAccount = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func envGen() *rapid.Generator[Env] {
	return rapid.Map(
		rapid.MapOf(
			rapid.SampledFrom([]string{RpcURLVar, ApiKeyVar, "HOME", "PATH", "ETHERSCAN_KEY", "api_url", "private_key", "Private_Key"}),
			rapid.String(),
		),
		func(m map[string]string) Env { return Env(m) },
	)
}

func TestResolveMissingCredential(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		env := envGen().Draw(t, "env")
		if rapid.Bool().Draw(t, "emptyKey") {
			env[PrivateKeyVar] = ""
		}

		cfg, err := Resolve(env)
		require.Nil(t, cfg)

		var missing *MissingCredentialError
		require.ErrorAs(t, err, &missing)
		require.Equal(t, PrivateKeyVar, missing.Variable)
		require.ErrorIs(t, err, ErrMissingCredential)
		require.True(t, IsMissingCredential(err))
	})
}

func TestResolveKeyNamesAreCaseSensitive(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Env{"private_key": testKey})
	require.Nil(t, cfg)
	require.ErrorIs(t, err, ErrMissingCredential)

	cfg, err = Resolve(Env{PrivateKeyVar: testKey, "api_url": "http://127.0.0.1:8545", "api_key": "k"})
	require.NoError(t, err)
	require.Equal(t, network.DefaultRpcURL, cfg.Network.URL)
	require.Empty(t, cfg.Explorer.ApiKey)
}

func TestResolveDefaults(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		key := rapid.StringMatching(`[0-9a-f]{1,64}`).Draw(t, "key")
		env := Env{PrivateKeyVar: key}

		cfg, err := Resolve(env)
		require.NoError(t, err)
		require.Equal(t, network.DefaultRpcURL, cfg.Network.URL)
		require.Empty(t, cfg.Explorer.ApiKey)
		require.Equal(t, key, cfg.Network.PrivateKey)
	})
}

func TestResolveCompilerIsStatic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		env := envGen().Draw(t, "env")
		env[PrivateKeyVar] = testKey

		cfg, err := Resolve(env)
		require.NoError(t, err)
		require.Equal(t, Compiler{Version: "0.8.24", Optimizer: Optimizer{Enabled: true, Runs: 200}}, cfg.Compiler)
		require.Equal(t, network.ArbitrumSepoliaChainId, cfg.Network.ChainId)
		require.Equal(t, network.ArbitrumSepoliaChainId, cfg.Explorer.ChainId)
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		env    Env
		url    string
		apiKey string
	}{
		{
			name: "only key",
			env:  Env{PrivateKeyVar: testKey},
			url:  network.DefaultRpcURL,
		},
		{
			name:   "everything set",
			env:    Env{PrivateKeyVar: testKey, RpcURLVar: "http://127.0.0.1:8545", ApiKeyVar: "ARBISCAN"},
			url:    "http://127.0.0.1:8545",
			apiKey: "ARBISCAN",
		},
		{
			name: "empty url falls back",
			env:  Env{PrivateKeyVar: testKey, RpcURLVar: ""},
			url:  network.DefaultRpcURL,
		},
		{
			name: "url is not validated",
			env:  Env{PrivateKeyVar: testKey, RpcURLVar: "not a url"},
			url:  "not a url",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Resolve(test.env)
			require.NoError(t, err)

			require.Equal(t, Network{
				Name:       network.ArbitrumSepolia,
				URL:        test.url,
				PrivateKey: testKey,
				ChainId:    421614,
			}, cfg.Network)
			require.Equal(t, Explorer{
				ApiKey:     test.apiKey,
				Network:    network.ArbitrumSepolia,
				ChainId:    421614,
				ApiURL:     network.ExplorerApiURL,
				BrowserURL: "https://sepolia.arbiscan.io",
			}, cfg.Explorer)
		})
	}
}

func TestAccount(t *testing.T) {
	t.Parallel()

	for _, key := range []string{testKey, "0x" + testKey} {
		addr, err := Network{PrivateKey: key}.Account()
		require.NoError(t, err)
		require.Equal(t, common.HexToAddress(testAccount), addr)
	}

	_, err := Network{PrivateKey: "zz"}.Account()
	require.Error(t, err)

	_, err = Network{}.Account()
	require.ErrorIs(t, err, ErrMissingCredential)
}

func TestRedacted(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Env{PrivateKeyVar: testKey, ApiKeyVar: "secret"})
	require.NoError(t, err)

	redacted := cfg.Redacted()
	require.Empty(t, redacted.Network.PrivateKey)
	require.Equal(t, "<redacted>", redacted.Explorer.ApiKey)
	require.Equal(t, testKey, cfg.Network.PrivateKey)
	require.NotContains(t, cfg.Network.String(), testKey)
}

func TestExplorerAddressURL(t *testing.T) {
	t.Parallel()

	e := Explorer{BrowserURL: "https://sepolia.arbiscan.io/"}
	require.Equal(t,
		"https://sepolia.arbiscan.io/address/"+testAccount,
		e.AddressURL(common.HexToAddress(testAccount)))
}

func TestCompilerVersion(t *testing.T) {
	t.Parallel()

	c := DefaultCompiler()
	v, err := c.SemVer()
	require.NoError(t, err)
	require.Equal(t, uint64(8), v.Minor())

	ok, err := c.Satisfies("^0.8.20")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Satisfies(">=0.8.25")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = Compiler{Version: "v0.8"}.SemVer()
	require.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PRIVATE_KEY="+testKey+"\nAPI_URL=http://from-file\n"), 0o600))

	env, err := LoadEnv(path, []string{"API_URL=http://from-env", "NOT_A_PAIR", "API_KEY=abc=def"}, true)
	require.NoError(t, err)
	require.Equal(t, testKey, env[PrivateKeyVar])
	require.Equal(t, "http://from-env", env[RpcURLVar])
	require.Equal(t, "abc=def", env[ApiKeyVar])

	cfg, err := Resolve(env)
	require.NoError(t, err)
	require.Equal(t, "http://from-env", cfg.Network.URL)

	t.Run("missing optional file", func(t *testing.T) {
		t.Parallel()

		env, err := LoadEnv(filepath.Join(dir, "absent.env"), []string{"PRIVATE_KEY=" + testKey}, false)
		require.NoError(t, err)
		require.Equal(t, testKey, env[PrivateKeyVar])
	})

	t.Run("missing required file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadEnv(filepath.Join(dir, "absent.env"), nil, true)
		require.Error(t, err)
		require.False(t, errors.Is(err, ErrMissingCredential))
	})
}
