// Package dice parses dice formulas and draws dice.
package dice

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

const (
	// MaxDiceCount bounds the dice count of any parsed formula
	MaxDiceCount = 100
	// MaxDiceSides bounds the die size of any parsed formula
	MaxDiceSides = 1000
	// MaxRollDice bounds the dice drawn for one roll, after critical
	// doubling and bonus dice
	MaxRollDice = 4 * MaxDiceCount
)

var formulaRegex = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// DefaultFormula is what malformed generated data rolls instead: a plain d20.
var DefaultFormula = Formula{DiceCount: 1, DiceSides: 20}

// Formula is a parsed NdS±M expression.
type Formula struct {
	DiceCount int
	DiceSides int
	Modifier  int
}

// String renders the canonical form, omitting a zero modifier.
func (f Formula) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(f.DiceCount))
	b.WriteByte('d')
	b.WriteString(strconv.Itoa(f.DiceSides))
	b.WriteString(FormatModifier(f.Modifier, false))
	return b.String()
}

// WithSides returns a copy of f using a different die size.
func (f Formula) WithSides(sides int) Formula {
	f.DiceSides = sides
	return f
}

// FormatModifier renders a signed modifier as "+3" or "-1". Zero renders as
// "+0" when keepZero is set and as the empty string otherwise.
func FormatModifier(mod int, keepZero bool) string {
	switch {
	case mod > 0:
		return "+" + strconv.Itoa(mod)
	case mod < 0:
		return strconv.Itoa(mod)
	case keepZero:
		return "+0"
	default:
		return ""
	}
}

// ParseFormula parses formulas coming from generated character data. It never
// fails: anything unparseable or over the dice limits becomes DefaultFormula
// and a warning is logged.
func ParseFormula(logger *zap.Logger, raw string) Formula {
	f, err := parseBounded(raw)
	if err != nil {
		if logger != nil {
			logger.Warn("falling back to d20 for malformed formula",
				zap.String("formula", raw),
				zap.Error(err),
			)
		}
		return DefaultFormula
	}
	return f
}

// ParseStrict parses a user-entered formula and rejects anything that is not
// a dice expression within the dice limits.
func ParseStrict(raw string) (Formula, error) {
	return parseBounded(raw)
}

func parseBounded(raw string) (Formula, error) {
	f, err := parse(raw)
	if err != nil {
		return Formula{}, err
	}
	if f.DiceCount > MaxDiceCount {
		return Formula{}, errors.InvalidArgumentf("dice count %d exceeds the limit of %d", f.DiceCount, MaxDiceCount)
	}
	if f.DiceSides > MaxDiceSides {
		return Formula{}, errors.InvalidArgumentf("die size %d exceeds the limit of %d", f.DiceSides, MaxDiceSides)
	}
	return f, nil
}

func parse(raw string) (Formula, error) {
	s := normalize(raw)
	if s == "" {
		return Formula{}, errors.InvalidArgument("formula is required")
	}

	matches := formulaRegex.FindStringSubmatch(s)
	if matches == nil {
		return Formula{}, errors.InvalidArgumentf("invalid dice formula: %q", raw)
	}

	count, err := strconv.Atoi(matches[1])
	if err != nil {
		return Formula{}, errors.InvalidArgumentf("invalid dice count in %q", raw)
	}
	sides, err := strconv.Atoi(matches[2])
	if err != nil {
		return Formula{}, errors.InvalidArgumentf("invalid die size in %q", raw)
	}
	if count <= 0 || sides <= 0 {
		return Formula{}, errors.InvalidArgumentf("dice count and size must be positive: %q", raw)
	}

	modifier := 0
	if matches[3] != "" {
		modifier, err = strconv.Atoi(matches[3])
		if err != nil {
			return Formula{}, errors.InvalidArgumentf("invalid modifier in %q", raw)
		}
	}

	return Formula{DiceCount: count, DiceSides: sides, Modifier: modifier}, nil
}

// normalize lowercases, drops whitespace and strips a trailing damage type.
func normalize(raw string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, raw)

	for _, damageType := range dnd5e.DamageTypes {
		if strings.HasSuffix(s, damageType) {
			return strings.TrimSuffix(s, damageType)
		}
	}
	return s
}
