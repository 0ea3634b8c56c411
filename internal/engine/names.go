package engine

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// ErrNameGeneration is returned when a unique slot name cannot be
// found in a reasonable number of attempts.
var ErrNameGeneration = errors.New("could not generate a unique slot name")

// Slot names are short adjective-animal pairs: stable, lowercase, and
// path-safe. They are assigned at init and never derived from branches.
var slotAdjectives = []string{
	"amber", "bold", "calm", "clear", "deep",
	"dry", "early", "fond", "glad", "grand",
	"keen", "late", "low", "mild", "neat",
	"plain", "quick", "ripe", "slow", "soft",
	"still", "tidy", "warm", "young",
}

var slotAnimals = []string{
	"bat", "crow", "deer", "dove", "elk",
	"finch", "fox", "hare", "heron", "ibis",
	"koi", "lark", "lynx", "mole", "newt",
	"otter", "owl", "pike", "seal", "shrew",
	"stork", "swan", "vole", "wren",
}

// newSlotName returns an adjective-animal pair not present in taken.
func newSlotName(taken map[string]bool) (string, error) {
	for range 10 {
		adj, err := randomWord(slotAdjectives)
		if err != nil {
			return "", err
		}
		animal, err := randomWord(slotAnimals)
		if err != nil {
			return "", err
		}
		name := adj + "-" + animal
		if !taken[name] {
			return name, nil
		}
	}
	return "", ErrNameGeneration
}

// newSlotNames returns count distinct slot names.
func newSlotNames(count int) ([]string, error) {
	taken := make(map[string]bool, count)
	names := make([]string, 0, count)
	for range count {
		name, err := newSlotName(taken)
		if err != nil {
			return nil, err
		}
		taken[name] = true
		names = append(names, name)
	}
	return names, nil
}

func randomWord(words []string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return "", fmt.Errorf("reading randomness: %w", err)
	}
	return words[n.Int64()], nil
}
