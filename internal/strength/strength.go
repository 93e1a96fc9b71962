// Package strength estimates how hard a password is to guess.
package strength

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// weakBits is the entropy at which a password stops being weak.
	weakBits = 30.0
	weakMax  = 1.0 / 3.0
	// hardBits past weakBits map to hardVal.
	hardBits = weakBits * 3
	hardVal  = 0.95
)

var ErrUnknownEstimator = errors.New("unknown strength estimator")

// Estimator returns a unitless strength for a password, nominally in [0,1].
type Estimator interface {
	Estimate(password string) float64
}

// EstimatorFunc adapts a function to the Estimator interface.
type EstimatorFunc func(password string) float64

func (f EstimatorFunc) Estimate(password string) float64 { return f(password) }

// AlphabetEntropy bases entropy on the distinct characters of the password.
var AlphabetEntropy Estimator = EstimatorFunc(func(password string) float64 {
	distinct := make(map[rune]struct{})
	for _, r := range password {
		distinct[r] = struct{}{}
	}
	return curve(bits(utf8.RuneCountInString(password), len(distinct)))
})

// CharsetEntropy bases entropy on the size of the character classes present.
var CharsetEntropy Estimator = EstimatorFunc(func(password string) float64 {
	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	charset := 0
	if lower {
		charset += 26
	}
	if upper {
		charset += 26
	}
	if digit {
		charset += 10
	}
	if other {
		charset += 33
	}
	return curve(bits(utf8.RuneCountInString(password), charset))
})

// ParseEstimator selects an estimator by name: "alphabet" or "charset".
func ParseEstimator(name string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "alphabet":
		return AlphabetEntropy, nil
	case "charset":
		return CharsetEntropy, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEstimator, name)
}

func bits(length, cardinality int) float64 {
	if length == 0 || cardinality <= 1 {
		return 0
	}
	return float64(length) * math.Log2(float64(cardinality))
}

// curve maps entropy bits onto [0,1): linear up to weakBits, then an
// exponential approach towards 1.
func curve(b float64) float64 {
	if b <= weakBits {
		return weakMax * b / weakBits
	}
	k := -math.Log2((1-hardVal)/(1-weakMax)) / hardBits
	return 1 - (1-weakMax)*math.Pow(2, -k*(b-weakBits))
}

// Scorer turns an estimate into a score in [0,100].
type Scorer struct {
	est Estimator
}

// NewScorer creates a Scorer. A nil estimator falls back to AlphabetEntropy.
func NewScorer(est Estimator) *Scorer {
	if est == nil {
		est = AlphabetEntropy
	}
	return &Scorer{est: est}
}

// Score returns the strength of password in [0,100]. The empty string scores 0.
func (s *Scorer) Score(password string) int {
	if password == "" {
		return 0
	}
	return clamp(s.est.Estimate(password))
}

// Score scores password with the default estimator.
func Score(password string) int {
	return NewScorer(nil).Score(password)
}

func clamp(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 100
	}
	return int(math.Floor(v * 100))
}

// Rating buckets a score for display.
type Rating string

const (
	Weak   Rating = "weak"
	Fair   Rating = "fair"
	Strong Rating = "strong"
)

// Rate returns the rating of a score.
func Rate(score int) Rating {
	switch {
	case score > 75:
		return Strong
	case score > 50:
		return Fair
	default:
		return Weak
	}
}
