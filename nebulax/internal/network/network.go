package network

import (
	"math/big"
	"strconv"
)

// ChainId identifies an EVM network. A wrong value makes the deployment tooling
// talk to a different (or a non-existent) chain.
type ChainId uint64

func (c ChainId) Big() *big.Int {
	return new(big.Int).SetUint64(uint64(c))
}

func (c ChainId) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// Arbitrum Sepolia testnet.
const (
	ArbitrumSepolia        = "arbitrum_sepolia"
	ArbitrumSepoliaChainId = ChainId(421614)

	DefaultRpcURL      = "https://arbitrum-sepolia.infura.io/v3/3d18acc99e604d92b3c5c5844859708e"
	ExplorerApiURL     = "https://arbitrum-sepolia.infura.io/v3/3d18acc99e604d92b3c5c5844859708e"
	ExplorerBrowserURL = "https://sepolia.arbiscan.io"
)
