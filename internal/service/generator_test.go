package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/strength"
)

func boolPtr(b bool) *bool { return &b }

func newTestGeneratorService() *GeneratorService {
	return NewGeneratorService(
		crypto.NewGenerator(crypto.NewSeededSource(1)),
		strength.NewScorer(nil),
		Limits{},
	)
}

func TestGenerate_Defaults(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Generate(model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != DefaultLength {
		t.Errorf("expected length %d, got %d", DefaultLength, resp.Length)
	}
	if len(resp.Passwords) != DefaultCount {
		t.Fatalf("expected %d passwords, got %d", DefaultCount, len(resp.Passwords))
	}
	for _, p := range resp.Passwords {
		if len(p.Password) != DefaultLength {
			t.Errorf("expected password length %d, got %d", DefaultLength, len(p.Password))
		}
		if strings.ContainsAny(p.Password, crypto.AmbiguousChars) {
			t.Errorf("password %q contains an ambiguous character by default", p.Password)
		}
		if p.Strength < 0 || p.Strength > 100 {
			t.Errorf("strength %d out of range", p.Strength)
		}
		if p.Rating != string(strength.Rate(p.Strength)) {
			t.Errorf("rating %q does not match strength %d", p.Rating, p.Strength)
		}
	}
}

func TestGenerate_CustomOptions(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Generate(model.GenerateRequest{
		Length:    32,
		Count:     5,
		Uppercase: boolPtr(true),
		Lowercase: boolPtr(true),
		Digits:    boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Passwords) != 5 {
		t.Fatalf("expected 5 passwords, got %d", len(resp.Passwords))
	}
	for _, p := range resp.Passwords {
		if len(p.Password) != 32 {
			t.Errorf("expected length 32, got %d", len(p.Password))
		}
		for _, c := range p.Password {
			if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
				t.Errorf("unexpected character %q in password with only uppercase+lowercase", c)
			}
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr error
	}{
		{
			name:    "negative length",
			req:     model.GenerateRequest{Length: -1},
			wantErr: crypto.ErrInvalidLength,
		},
		{
			name:    "length too long",
			req:     model.GenerateRequest{Length: DefaultMaxLength + 1},
			wantErr: ErrLengthTooLong,
		},
		{
			name:    "count too large",
			req:     model.GenerateRequest{Count: DefaultMaxCount + 1},
			wantErr: ErrCountOutOfRange,
		},
		{
			name:    "negative count",
			req:     model.GenerateRequest{Count: -2},
			wantErr: ErrCountOutOfRange,
		},
		{
			name: "no character types",
			req: model.GenerateRequest{
				Length:    16,
				Uppercase: boolPtr(false),
				Lowercase: boolPtr(false),
				Digits:    boolPtr(false),
				Symbols:   boolPtr(false),
			},
			wantErr: crypto.ErrNoCharactersAvailable,
		},
	}

	svc := newTestGeneratorService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Generate(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !IsValidationError(err) {
				t.Errorf("%v should be a validation error", err)
			}
			if len(resp.Passwords) != 0 {
				t.Errorf("expected no passwords on error, got %d", len(resp.Passwords))
			}
		})
	}
}

func TestGenerate_CustomLimits(t *testing.T) {
	svc := NewGeneratorService(crypto.NewGenerator(nil), strength.NewScorer(nil), Limits{MaxLength: 8, MaxCount: 1})

	if _, err := svc.Generate(model.GenerateRequest{Length: 8, Count: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Generate(model.GenerateRequest{Length: 9, Count: 1}); !errors.Is(err, ErrLengthTooLong) {
		t.Errorf("expected ErrLengthTooLong, got %v", err)
	}
	if _, err := svc.Generate(model.GenerateRequest{Length: 8, Count: 2}); !errors.Is(err, ErrCountOutOfRange) {
		t.Errorf("expected ErrCountOutOfRange, got %v", err)
	}
}

func TestScore(t *testing.T) {
	svc := newTestGeneratorService()

	resp, err := svc.Score(model.StrengthRequest{Password: "abcd"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Strength != strength.Score("abcd") {
		t.Errorf("expected strength %d, got %d", strength.Score("abcd"), resp.Strength)
	}
	if resp.Rating != string(strength.Weak) {
		t.Errorf("expected rating %q, got %q", strength.Weak, resp.Rating)
	}

	if _, err := svc.Score(model.StrengthRequest{}); !errors.Is(err, ErrPasswordRequired) {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestOptions(t *testing.T) {
	opts := Options(model.GenerateRequest{})
	if opts != crypto.DefaultOptions() {
		t.Errorf("expected default options, got %+v", opts)
	}

	opts = Options(model.GenerateRequest{Length: 4, Symbols: boolPtr(true), ExcludeSimilar: boolPtr(false)})
	if opts.Length != 4 || !opts.Classes.Symbol || opts.ExcludeAmbiguous {
		t.Errorf("unexpected options %+v", opts)
	}
}
