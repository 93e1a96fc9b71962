package service

import (
	"errors"
	"fmt"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/strength"
)

const (
	DefaultLength    = 16
	DefaultCount     = 3
	DefaultMaxLength = 128
	DefaultMaxCount  = 20
)

var (
	ErrLengthTooLong    = errors.New("password length exceeds the allowed maximum")
	ErrCountOutOfRange  = errors.New("password count is out of range")
	ErrPasswordRequired = errors.New("password is required")
)

// Limits bounds what a single request may ask for.
type Limits struct {
	MaxLength int
	MaxCount  int
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	generator *crypto.Generator
	scorer    *strength.Scorer
	limits    Limits
}

// NewGeneratorService creates a new GeneratorService. Zero limits fall back to the defaults.
func NewGeneratorService(gen *crypto.Generator, scorer *strength.Scorer, limits Limits) *GeneratorService {
	if limits.MaxLength <= 0 {
		limits.MaxLength = DefaultMaxLength
	}
	if limits.MaxCount <= 0 {
		limits.MaxCount = DefaultMaxCount
	}
	return &GeneratorService{
		generator: gen,
		scorer:    scorer,
		limits:    limits,
	}
}

// Generate produces a scored batch of passwords. Either every password is
// generated or an error is returned.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := Options(req)

	count := req.Count
	if count == 0 {
		count = DefaultCount
	}
	if count < 0 || count > s.limits.MaxCount {
		return model.GenerateResponse{}, fmt.Errorf("%w: %d (allowed 1-%d)", ErrCountOutOfRange, count, s.limits.MaxCount)
	}
	if opts.Length > s.limits.MaxLength {
		return model.GenerateResponse{}, fmt.Errorf("%w: %d > %d", ErrLengthTooLong, opts.Length, s.limits.MaxLength)
	}

	passwords := make([]model.GeneratedPassword, 0, count)
	for i := 0; i < count; i++ {
		password, err := s.generator.Generate(opts)
		if err != nil {
			return model.GenerateResponse{}, err
		}
		passwords = append(passwords, s.scored(password))
	}

	return model.GenerateResponse{
		Length:    opts.Length,
		Passwords: passwords,
	}, nil
}

// Score estimates the strength of a caller-supplied password.
func (s *GeneratorService) Score(req model.StrengthRequest) (model.StrengthResponse, error) {
	if req.Password == "" {
		return model.StrengthResponse{}, ErrPasswordRequired
	}
	p := s.scored(req.Password)
	return model.StrengthResponse{Strength: p.Strength, Rating: p.Rating}, nil
}

func (s *GeneratorService) scored(password string) model.GeneratedPassword {
	score := s.scorer.Score(password)
	return model.GeneratedPassword{
		Password: password,
		Strength: score,
		Rating:   string(strength.Rate(score)),
	}
}

// Options converts a request into generator options, filling in defaults
// for anything the caller left out. A negative length is passed through so
// the generator can reject it.
func Options(req model.GenerateRequest) crypto.GeneratorOptions {
	def := crypto.DefaultOptions()
	opts := crypto.GeneratorOptions{
		Length: req.Length,
		Classes: crypto.Classes{
			Lower:  boolOrDefault(req.Lowercase, def.Classes.Lower),
			Upper:  boolOrDefault(req.Uppercase, def.Classes.Upper),
			Digit:  boolOrDefault(req.Digits, def.Classes.Digit),
			Symbol: boolOrDefault(req.Symbols, def.Classes.Symbol),
		},
		ExcludeAmbiguous: boolOrDefault(req.ExcludeSimilar, def.ExcludeAmbiguous),
	}

	if opts.Length == 0 {
		opts.Length = DefaultLength
	}
	return opts
}

// IsValidationError reports whether err was caused by the caller's input.
func IsValidationError(err error) bool {
	return errors.Is(err, crypto.ErrInvalidLength) ||
		errors.Is(err, crypto.ErrNoCharactersAvailable) ||
		errors.Is(err, ErrLengthTooLong) ||
		errors.Is(err, ErrCountOutOfRange) ||
		errors.Is(err, ErrPasswordRequired)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
