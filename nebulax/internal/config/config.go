package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/NebulaX/nebulax/nebulax/internal/network"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-viper/mapstructure/v2"
)

// Names of the recognized environment variables.
const (
	RpcURLVar     = "API_URL"
	PrivateKeyVar = "PRIVATE_KEY"
	ApiKeyVar     = "API_KEY"
)

const (
	CompilerVersion       = "0.8.24"
	OptimizerEnabled      = true
	OptimizerRuns         = 200
	defaultRedactedSecret = "<redacted>"
)

// Env is an explicit view of the environment. A missing key and an empty value are equivalent.
type Env map[string]string

type Network struct {
	Name       string          `yaml:"name" json:"name"`
	URL        string          `yaml:"url" json:"url"`
	PrivateKey string          `yaml:"-" json:"-"`
	ChainId    network.ChainId `yaml:"chainId" json:"chainId"`
}

type Explorer struct {
	ApiKey     string          `yaml:"apiKey" json:"apiKey"`
	Network    string          `yaml:"network" json:"network"`
	ChainId    network.ChainId `yaml:"chainId" json:"chainId"`
	ApiURL     string          `yaml:"apiURL" json:"apiURL"`
	BrowserURL string          `yaml:"browserURL" json:"browserURL"`
}

type Optimizer struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Runs    int  `yaml:"runs" json:"runs"`
}

type Compiler struct {
	Version   string    `yaml:"version" json:"version"`
	Optimizer Optimizer `yaml:"optimizer" json:"optimizer"`
}

type Config struct {
	Network  Network  `yaml:"network" json:"network"`
	Explorer Explorer `yaml:"explorer" json:"explorer"`
	Compiler Compiler `yaml:"compiler" json:"compiler"`
}

// rawEnv holds the recognized variables. Names match exactly, as in the
// process environment.
type rawEnv struct {
	RpcURL     string `mapstructure:"API_URL"`
	PrivateKey string `mapstructure:"PRIVATE_KEY"`
	ApiKey     string `mapstructure:"API_KEY"`
}

func DefaultCompiler() Compiler {
	return Compiler{
		Version: CompilerVersion,
		Optimizer: Optimizer{
			Enabled: OptimizerEnabled,
			Runs:    OptimizerRuns,
		},
	}
}

// Resolve builds the full descriptor from env. The signing credential is checked
// before anything else; on failure no descriptor is returned.
func Resolve(env Env) (*Config, error) {
	var raw rawEnv
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
		Result:    &raw,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create environment decoder: %w", err)
	}
	if err := decoder.Decode(map[string]string(env)); err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	if raw.PrivateKey == "" {
		return nil, &MissingCredentialError{Variable: PrivateKeyVar}
	}

	url := raw.RpcURL
	if url == "" {
		url = network.DefaultRpcURL
	}

	return &Config{
		Network: Network{
			Name:       network.ArbitrumSepolia,
			URL:        url,
			PrivateKey: raw.PrivateKey,
			ChainId:    network.ArbitrumSepoliaChainId,
		},
		Explorer: Explorer{
			ApiKey:     raw.ApiKey,
			Network:    network.ArbitrumSepolia,
			ChainId:    network.ArbitrumSepoliaChainId,
			ApiURL:     network.ExplorerApiURL,
			BrowserURL: network.ExplorerBrowserURL,
		},
		Compiler: DefaultCompiler(),
	}, nil
}

// Account derives the deployer address from the signing key.
func (n Network) Account() (common.Address, error) {
	if n.PrivateKey == "" {
		return common.Address{}, ErrMissingCredential
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(n.PrivateKey, "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid private key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

func (n Network) String() string {
	key := ""
	if n.PrivateKey != "" {
		key = defaultRedactedSecret
	}
	return fmt.Sprintf("%s(chainId=%s, url=%s, key=%s)", n.Name, n.ChainId, n.URL, key)
}

// Redacted returns a copy that is safe to print.
func (c Config) Redacted() Config {
	if c.Explorer.ApiKey != "" {
		c.Explorer.ApiKey = defaultRedactedSecret
	}
	c.Network.PrivateKey = ""
	return c
}

func (e Explorer) AddressURL(addr common.Address) string {
	return strings.TrimSuffix(e.BrowserURL, "/") + "/address/" + addr.Hex()
}

func (c Compiler) SemVer() (*semver.Version, error) {
	v, err := semver.StrictNewVersion(c.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid compiler version %q: %w", c.Version, err)
	}
	return v, nil
}

// Satisfies reports whether the compiler version matches a solidity pragma
// constraint such as "^0.8.20".
func (c Compiler) Satisfies(pragma string) (bool, error) {
	v, err := c.SemVer()
	if err != nil {
		return false, err
	}
	constraint, err := semver.NewConstraint(pragma)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", pragma, err)
	}
	return constraint.Check(v), nil
}

// IsMissingCredential reports whether err is a configuration failure caused by an absent key.
func IsMissingCredential(err error) bool {
	return errors.Is(err, ErrMissingCredential)
}
