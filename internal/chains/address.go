package chains

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

const solanaKeyLen = 32

var evmChains = map[string]bool{
	"ethereum":  true,
	"bsc":       true,
	"polygon":   true,
	"base":      true,
	"arbitrum":  true,
	"optimism":  true,
	"avalanche": true,
	"fantom":    true,
}

// IsEVM reports whether chain uses 20-byte hex account addresses.
func IsEVM(chain string) bool {
	return evmChains[strings.ToLower(chain)]
}

// ErrInvalidAddress is returned when an address does not match its chain's format.
type ErrInvalidAddress struct {
	Chain   string
	Address string
}

func (e *ErrInvalidAddress) Error() string {
	return fmt.Sprintf("invalid %s address %q", e.Chain, e.Address)
}

// ValidAddress checks addr against the address format of chain.
// Chains without a known format accept any non-empty address.
func ValidAddress(chain, addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return &ErrInvalidAddress{Chain: chain, Address: addr}
	}
	switch c := strings.ToLower(chain); {
	case IsEVM(c):
		if !common.IsHexAddress(addr) {
			return &ErrInvalidAddress{Chain: c, Address: addr}
		}
	case c == "solana":
		raw, err := base58.Decode(addr)
		if err != nil || len(raw) != solanaKeyLen {
			return &ErrInvalidAddress{Chain: c, Address: addr}
		}
	}
	return nil
}

// DisplayAddress returns the canonical display form: EIP-55 checksum for
// EVM chains, the input unchanged otherwise.
func DisplayAddress(chain, addr string) string {
	if IsEVM(chain) && common.IsHexAddress(addr) {
		return common.HexToAddress(addr).Hex()
	}
	return addr
}
