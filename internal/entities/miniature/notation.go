package miniature

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

// Matches notation like "2d6", "1d8+3" or "1d4-1"
var damageNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// ParseDamageRoll parses dice notation into a damage roll of the given type
func ParseDamageRoll(notation string, damageType DamageType) (*DamageRoll, error) {
	matches := damageNotationRegex.FindStringSubmatch(strings.ToLower(strings.ReplaceAll(notation, " ", "")))
	if len(matches) != 4 {
		return nil, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY[+Z])", notation)
	}

	count, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}
	size, err := strconv.Atoi(matches[2])
	if err != nil {
		return nil, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}
	if count <= 0 || size <= 0 {
		return nil, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}

	modifier := 0
	if matches[3] != "" {
		modifier, err = strconv.Atoi(matches[3])
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid modifier in notation: %s", notation)
		}
	}

	return &DamageRoll{
		DiceCount:  count,
		DiceSize:   size,
		Modifier:   modifier,
		DamageType: damageType,
	}, nil
}
