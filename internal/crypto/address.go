package crypto

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsAddress reports whether s is a syntactically valid account address: 40
// hex digits with an optional 0x prefix. Mixed-case input must carry a valid
// EIP-55 checksum; all-lower and all-upper input is accepted as is.
func IsAddress(s string) bool {
	if !common.IsHexAddress(s) {
		return false
	}
	digits := s
	if has0xPrefix(digits) {
		digits = digits[2:]
	}
	if digits == strings.ToLower(digits) || digits == strings.ToUpper(digits) {
		return true
	}
	return common.HexToAddress(s).Hex()[2:] == digits
}

// ParseAddress converts s to an address, rejecting anything IsAddress
// refuses.
func ParseAddress(s string) (common.Address, error) {
	if !IsAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
