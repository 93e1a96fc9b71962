package crypto

import (
	"errors"
	"fmt"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	// AmbiguousChars are removed from every alphabet when look-alikes are excluded.
	AmbiguousChars = "l1IoO0"
)

var (
	ErrInvalidLength         = errors.New("password length must be at least 1")
	ErrNoCharactersAvailable = errors.New("no characters available: select at least one character type")
	ErrUnknownClass          = errors.New("unknown character class")
)

// Class identifies one of the fixed character classes.
type Class int

const (
	Lower Class = iota
	Upper
	Digit
	Symbol
)

// AllClasses lists the classes in the order mandatory picks are made.
var AllClasses = []Class{Lower, Upper, Digit, Symbol}

func (c Class) String() string {
	switch c {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Alphabet returns the full, unfiltered alphabet of the class.
func (c Class) Alphabet() string {
	switch c {
	case Lower:
		return lowercaseChars
	case Upper:
		return uppercaseChars
	case Digit:
		return digitChars
	case Symbol:
		return symbolChars
	}
	return ""
}

// ParseClass maps a class name (lower, upper, digit, symbol) to a Class.
func ParseClass(name string) (Class, error) {
	for _, c := range AllClasses {
		if c.String() == strings.ToLower(strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
}

// Classes records which character classes are enabled.
type Classes struct {
	Lower  bool
	Upper  bool
	Digit  bool
	Symbol bool
}

// Has reports whether class c is enabled.
func (cs Classes) Has(c Class) bool {
	switch c {
	case Lower:
		return cs.Lower
	case Upper:
		return cs.Upper
	case Digit:
		return cs.Digit
	case Symbol:
		return cs.Symbol
	}
	return false
}

// Enabled lists the enabled classes in iteration order.
func (cs Classes) Enabled() []Class {
	var out []Class
	for _, c := range AllClasses {
		if cs.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Pool is the usable alphabet of one enabled class.
type Pool struct {
	Class Class
	Chars []rune
}

// Pools builds the per-class pools for the enabled classes, removing
// ambiguous characters when requested. Pools left empty are dropped.
func Pools(classes Classes, excludeAmbiguous bool) []Pool {
	var pools []Pool
	for _, c := range classes.Enabled() {
		var chars []rune
		for _, r := range c.Alphabet() {
			if excludeAmbiguous && strings.ContainsRune(AmbiguousChars, r) {
				continue
			}
			chars = append(chars, r)
		}
		if len(chars) > 0 {
			pools = append(pools, Pool{Class: c, Chars: chars})
		}
	}
	return pools
}

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length           int
	Classes          Classes
	ExcludeAmbiguous bool
}

// DefaultOptions returns 16 characters of letters and digits without look-alikes.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length: 16,
		Classes: Classes{
			Lower: true,
			Upper: true,
			Digit: true,
		},
		ExcludeAmbiguous: true,
	}
}

// Generator produces passwords from an injected random source.
type Generator struct {
	src Source
}

// NewGenerator creates a Generator. A nil source falls back to SecureSource.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = SecureSource()
	}
	return &Generator{src: src}
}

// Generate creates a password according to opts.
func (g *Generator) Generate(opts GeneratorOptions) (string, error) {
	return Generate(g.src, opts.Length, opts.Classes, opts.ExcludeAmbiguous)
}

// Generate creates a password of exactly length characters containing at
// least one character of every enabled class, as long as length allows it.
// When length is smaller than the number of usable classes only the first
// length classes, in iteration order, get a guaranteed character.
func Generate(src Source, length int, classes Classes, excludeAmbiguous bool) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	pools := Pools(classes, excludeAmbiguous)
	var pool []rune
	for _, p := range pools {
		pool = append(pool, p.Chars...)
	}
	if len(pool) == 0 {
		return "", ErrNoCharactersAvailable
	}

	mandatory := min(len(pools), length)
	result := make([]rune, 0, length)

	// Guarantee class coverage before filling from the combined pool.
	for _, p := range pools[:mandatory] {
		result = append(result, src.Choice(p.Chars))
	}
	result = append(result, src.Choices(pool, length-mandatory)...)

	src.Shuffle(result)

	return string(result), nil
}
