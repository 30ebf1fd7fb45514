package solc

import (
	"path/filepath"
	"testing"

	"github.com/NebulaX/nebulax/nebulax/internal/config"
	"github.com/stretchr/testify/require"
)

func TestArgsFromDescriptor(t *testing.T) {
	t.Parallel()

	args := Args("contracts/NebulaX.sol", OptionsFromDescriptor(config.DefaultCompiler())...)
	require.Equal(t, []string{
		"--combined-json", "abi,bin,bin-runtime",
		"--optimize", "--optimize-runs", "200",
		"contracts/NebulaX.sol",
	}, args)
}

func TestArgsOptimizerDisabled(t *testing.T) {
	t.Parallel()

	c := config.DefaultCompiler()
	c.Optimizer.Enabled = false
	require.Empty(t, OptionsFromDescriptor(c))
	require.NotContains(t, Args("a.sol", OptionsFromDescriptor(c)...), "--optimize")
}

func TestArgsPaths(t *testing.T) {
	t.Parallel()

	base, err := filepath.Abs("contracts")
	require.NoError(t, err)
	oz, err := filepath.Abs("node_modules/@openzeppelin")
	require.NoError(t, err)

	args := Args("a.sol",
		WithBasePath("contracts"),
		WithRemapping("@openzeppelin", "node_modules/@openzeppelin"),
		WithAllowedPaths("contracts", "node_modules/@openzeppelin"))
	require.Equal(t, []string{
		"--combined-json", "abi,bin,bin-runtime",
		"--base-path", base,
		"@openzeppelin=" + oz,
		"--allow-paths", base + "," + oz,
		"a.sol",
	}, args)
}

func TestParseCombinedJSON(t *testing.T) {
	t.Parallel()

	output := []byte(`{
  "contracts": {
    "contracts/NebXToken.sol:NebXToken": {"abi": [], "bin": "6080", "bin-runtime": "6081"},
    "contracts/NebulaX.sol:NebulaX": {
      "abi": [{"type": "constructor", "inputs": [{"name": "token", "type": "address"}], "stateMutability": "nonpayable"}],
      "bin": "6082",
      "bin-runtime": "6083"
    }
  },
  "version": "0.8.24+commit.e11b9ed9"
}`)

	contracts, err := ParseCombinedJSON(output, config.DefaultCompiler())
	require.NoError(t, err)
	require.Len(t, contracts, 2)
	require.Contains(t, contracts, "NebXToken")
	require.Contains(t, contracts, "NebulaX")
	require.Equal(t, "0x6082", contracts["NebulaX"].Code)
	require.Equal(t, "0.8.24", contracts["NebulaX"].Info.CompilerVersion)
	require.Equal(t, "--optimize --optimize-runs 200", contracts["NebulaX"].Info.CompilerOptions)

	_, err = ParseCombinedJSON([]byte("not json"), config.DefaultCompiler())
	require.Error(t, err)
}
