package id

import "math/rand/v2"

const (
	letterCount = 5
	digitCount  = 4

	// AccountNumberLen is the length of every account number.
	AccountNumberLen = letterCount + digitCount

	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// Generator produces account numbers like "k3Qa9Zb12": five mixed-case
// letters and four digits in shuffled order. It does not check for
// collisions; callers own uniqueness.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded from the runtime's random source.
func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededGenerator returns a Generator with a fixed seed, so the
// sequence of numbers it yields is reproducible.
func NewSeededGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next returns a fresh account number.
func (g *Generator) Next() string {
	buf := make([]byte, 0, AccountNumberLen)
	for range letterCount {
		buf = append(buf, letters[g.rng.IntN(len(letters))])
	}
	for range digitCount {
		buf = append(buf, digits[g.rng.IntN(len(digits))])
	}
	g.rng.Shuffle(len(buf), func(i, j int) {
		buf[i], buf[j] = buf[j], buf[i]
	})
	return string(buf)
}

// IsAccountNumber reports whether s has the account number shape:
// 9 ASCII characters, exactly 5 letters and 4 digits, in any order.
func IsAccountNumber(s string) bool {
	if len(s) != AccountNumberLen {
		return false
	}
	var nLetters, nDigits int
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			nDigits++
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			nLetters++
		default:
			return false
		}
	}
	return nLetters == letterCount && nDigits == digitCount
}
