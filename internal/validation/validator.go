package validation

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Davincible/rscodec/pkg/rs"
)

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

func ValidateHex(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return fmt.Errorf("hex string cannot be empty")
	}

	if len(input)%2 != 0 {
		return fmt.Errorf("hex string must have even length")
	}

	if !hexPattern.MatchString(input) {
		return fmt.Errorf("invalid hex characters")
	}

	return nil
}

// Codeword input formats accepted by ParseCodewordAs.
const (
	FormatAuto   = "auto"
	FormatHex    = "hex"
	FormatBase64 = "base64"
)

func ValidateFormat(format string) error {
	switch format {
	case FormatAuto, FormatHex, FormatBase64:
		return nil
	}
	return fmt.Errorf("format must be auto, hex or base64 (got %q)", format)
}

// ParseCodeword accepts a codeword as hex (spaces allowed between bytes) or
// standard base64. Input that is valid hex is read as hex; use
// ParseCodewordAs to force base64.
func ParseCodeword(input string) ([]byte, error) {
	return ParseCodewordAs(input, FormatAuto)
}

// ParseCodewordAs parses a codeword in the given format.
func ParseCodewordAs(input, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("codeword cannot be empty")
	}
	compact := strings.Join(strings.Fields(input), "")

	switch format {
	case FormatHex:
		if err := ValidateHex(compact); err != nil {
			return nil, err
		}
		return hex.DecodeString(compact)
	case FormatAuto:
		if ValidateHex(compact) == nil {
			return hex.DecodeString(compact)
		}
	}

	data, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		if format == FormatBase64 {
			return nil, fmt.Errorf("invalid base64 codeword: %w", err)
		}
		return nil, fmt.Errorf("codeword is neither hex nor base64")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("codeword cannot be empty")
	}
	return data, nil
}

func ValidateNsym(nsym int) error {
	if nsym < 1 || nsym >= rs.MaxCodewordLength {
		return fmt.Errorf("nsym must be between 1 and %d (got %d)", rs.MaxCodewordLength-1, nsym)
	}
	return nil
}

// ValidateMessageLength checks that a message and its parity fit in one
// codeword.
func ValidateMessageLength(length, nsym int) error {
	if err := ValidateNsym(nsym); err != nil {
		return err
	}
	if limit := rs.MaxCodewordLength - nsym; length > limit {
		return fmt.Errorf("message is %d bytes, at most %d fit with nsym %d", length, limit, nsym)
	}
	return nil
}

func ValidatePosition(pos, length int) error {
	if pos < 0 || pos >= length {
		return fmt.Errorf("position must be between 0 and %d (got %d)", length-1, pos)
	}
	return nil
}

func ValidateBit(bit int) error {
	if bit < 0 || bit > 7 {
		return fmt.Errorf("bit must be between 0 and 7 (got %d)", bit)
	}
	return nil
}

// ParsePositions parses a comma separated list of distinct byte positions.
func ParsePositions(list string, length int) ([]int, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, fmt.Errorf("positions cannot be empty")
	}

	parts := strings.Split(list, ",")
	positions := make([]int, 0, len(parts))
	seen := make(map[int]bool, len(parts))

	for _, part := range parts {
		pos, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid position '%s'", part)
		}
		if err := ValidatePosition(pos, length); err != nil {
			return nil, err
		}
		if seen[pos] {
			return nil, fmt.Errorf("duplicate position %d", pos)
		}
		seen[pos] = true
		positions = append(positions, pos)
	}

	return positions, nil
}
