package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxNameLength = 100

	// Separator splits "before|after" arguments and is therefore not allowed in names.
	Separator = "|"

	// Discord treats a role color of 0 as "no color".
	zeroHex     = "#000000"
	nonZeroHex  = "#000001"
	shortLength = len("#rgb")
	longLength  = len("#rrggbb")
)

var validate = validator.New()

// NormalizeHex validates a #rgb or #rrggbb value (the # is optional) and returns it
// in lower-case #rrggbb form, remapping pure black to #000001.
func NormalizeHex(input string) (string, error) {
	hex := strings.ToLower(strings.TrimSpace(input))
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	if len(hex) != shortLength && len(hex) != longLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, input)
	}
	if err := validate.Var(hex, "hexcolor"); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, input)
	}

	if len(hex) == shortLength {
		hex = "#" + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2) + strings.Repeat(hex[3:4], 2)
	}

	if hex == zeroHex {
		return nonZeroHex, nil
	}

	return hex, nil
}

// HexValue returns the integer value of a normalized hex code, as used for role colors.
func HexValue(hex string) int {
	v, err := strconv.ParseInt(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}

// ValidateName checks the constraints shared by color and theme names.
func ValidateName(name string) error {
	n := len([]rune(name))
	if n == 0 || strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if n > MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidName, MaxNameLength)
	}
	if strings.Contains(name, Separator) {
		return fmt.Errorf("%w: name must not contain %q", ErrInvalidName, Separator)
	}
	return nil
}

// ParseSwap splits "before|after" into its two trimmed halves.
func ParseSwap(input string) (before, after string, err error) {
	parts := strings.Split(input, Separator)
	if len(parts) != 2 {
		return "", "", ErrSwapSyntax
	}

	before = strings.TrimSpace(parts[0])
	after = strings.TrimSpace(parts[1])
	if before == "" || after == "" {
		return "", "", ErrSwapSyntax
	}

	return before, after, nil
}
