package crypto

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Source supplies the randomness the generator consumes.
// Implementations must be safe for concurrent use.
type Source interface {
	// Choice returns one uniformly chosen element of a non-empty alphabet.
	Choice(alphabet []rune) rune
	// Choices returns k elements drawn uniformly with replacement.
	Choices(alphabet []rune, k int) []rune
	// Shuffle permutes runes uniformly in place.
	Shuffle(runes []rune)
}

// cryptoReader adapts crypto/rand to a math/rand/v2 Source.
type cryptoReader struct{}

func (cryptoReader) Uint64() uint64 {
	var b [8]byte
	crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

type randSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// SecureSource returns a Source backed by crypto/rand.
func SecureSource() Source {
	return NewSource(cryptoReader{})
}

// NewSeededSource returns a deterministic Source. Two sources created with
// the same seed produce the same sequence.
func NewSeededSource(seed uint64) Source {
	return NewSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSource wraps any math/rand/v2 source.
func NewSource(src rand.Source) Source {
	return &randSource{r: rand.New(src)}
}

func (s *randSource) Choice(alphabet []rune) rune {
	s.mu.Lock()
	defer s.mu.Unlock()
	return alphabet[s.r.IntN(len(alphabet))]
}

func (s *randSource) Choices(alphabet []rune, k int) []rune {
	if k <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]rune, k)
	for i := range out {
		out[i] = alphabet[s.r.IntN(len(alphabet))]
	}
	return out
}

// Shuffle performs a Fisher-Yates shuffle.
func (s *randSource) Shuffle(runes []rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(len(runes), func(i, j int) {
		runes[i], runes[j] = runes[j], runes[i]
	})
}
