package gadgets

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
)

const (
	MinProbability  = 1
	MaxProbability  = 100
	MinSelfDestruct = 100000
	MaxSelfDestruct = 999999
)

// IntSource draws an integer uniformly from [min, max].
type IntSource interface {
	IntRange(min, max int) (int, error)
}

// CryptoInts draws from crypto/rand.
type CryptoInts struct{}

func (CryptoInts) IntRange(min, max int) (int, error) {
	if max < min {
		return 0, errors.New("empty range")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random number: %w", err)
	}
	return min + int(n.Int64()), nil
}

// MathInts draws from the math/rand/v2 global generator.
type MathInts struct{}

func (MathInts) IntRange(min, max int) (int, error) {
	if max < min {
		return 0, errors.New("empty range")
	}
	return min + mrand.IntN(max-min+1), nil
}

// NameGenerator produces gadget display names and skins.
type NameGenerator interface {
	Name() (string, error)
	Skin() (string, error)
}

// WordListNames builds names as adjective+color+animal and skins as a color.
type WordListNames struct {
	src IntSource
}

func NewWordListNames(src IntSource) *WordListNames {
	return &WordListNames{src: src}
}

func (w *WordListNames) pick(words []string) (string, error) {
	i, err := w.src.IntRange(0, len(words)-1)
	if err != nil {
		return "", err
	}
	return words[i], nil
}

func (w *WordListNames) Name() (string, error) {
	var name string
	for _, list := range [][]string{Adjectives, Colors, Animals} {
		word, err := w.pick(list)
		if err != nil {
			return "", err
		}
		name += word
	}
	return name, nil
}

func (w *WordListNames) Skin() (string, error) {
	return w.pick(Colors)
}

// Identity is the generated, immutable part of a new gadget.
type Identity struct {
	Name                      string
	Skin                      string
	MissionSuccessProbability int
	SelfDestructSequence      int
}

type IdentityGenerator struct {
	names  NameGenerator
	odds   IntSource
	secure IntSource
}

func NewIdentityGenerator(names NameGenerator, odds, secure IntSource) *IdentityGenerator {
	return &IdentityGenerator{names: names, odds: odds, secure: secure}
}

// DefaultIdentityGenerator uses math/rand for names and odds and crypto/rand
// for the self-destruct sequence.
func DefaultIdentityGenerator() *IdentityGenerator {
	return NewIdentityGenerator(NewWordListNames(MathInts{}), MathInts{}, CryptoInts{})
}

func (g *IdentityGenerator) Next() (Identity, error) {
	name, err := g.names.Name()
	if err != nil {
		return Identity{}, err
	}
	skin, err := g.names.Skin()
	if err != nil {
		return Identity{}, err
	}
	odds, err := g.odds.IntRange(MinProbability, MaxProbability)
	if err != nil {
		return Identity{}, err
	}
	code, err := g.secure.IntRange(MinSelfDestruct, MaxSelfDestruct)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		Name:                      name,
		Skin:                      skin,
		MissionSuccessProbability: odds,
		SelfDestructSequence:      code,
	}, nil
}
