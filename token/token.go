package token

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// AddressMap maps a token symbol to its checksummed contract address.
type AddressMap map[string]string

// Checksum converts a hex address into its EIP-55 mixed-case form.
func Checksum(raw string) (string, error) {
	if !common.IsHexAddress(raw) {
		return "", errors.Errorf("invalid token address %q", raw)
	}
	return common.HexToAddress(raw).Hex(), nil
}

// AddIfAbsent checksums address and stores it under symbol, unless symbol
// is already known. It reports whether the map changed.
func (m AddressMap) AddIfAbsent(symbol, address string) (bool, error) {
	if _, exist := m[symbol]; exist {
		return false, nil
	}
	checksummed, err := Checksum(address)
	if err != nil {
		return false, errors.Wrapf(err, "symbol %s", symbol)
	}
	m[symbol] = checksummed
	return true, nil
}

// Merge copies every symbol of other that m does not have yet and returns
// the number of symbols added. Addresses in other are taken as-is.
func (m AddressMap) Merge(other AddressMap) int {
	added := 0
	for symbol, address := range other {
		if _, exist := m[symbol]; exist {
			continue
		}
		m[symbol] = address
		added++
	}
	return added
}
