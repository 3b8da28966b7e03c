package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAddress is returned when goto-address input does not parse.
var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress parses user-entered address text. A "0x"/"0X" prefix forces
// hexadecimal. A bare string of hex digits is also read as hexadecimal, so
// "6699" means 0x6699, not decimal 6699. Everything else parses as decimal.
func ParseAddress(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidAddress)
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, input)
		}
		return v, nil
	}

	if isHexDigits(s) {
		v, err := strconv.ParseInt(s, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, input)
		}
		return v, nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, input)
	}
	return v, nil
}

func isHexDigits(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
