package game

import "math/rand"

// builtinWords is the fallback word pool, used whenever the primary
// generator has nothing to offer (empty words table, database down).
var builtinWords = []string{
	"Star", "Mountain", "House", "Tree", "Car",
	"Sun", "Moon", "Cloud", "Flower", "Boat",
	"Bridge", "Key", "Book", "Clock", "Fish",
	"Bird", "Cat", "Dog", "Chair", "Table",
}

type fallbackWordsGenerator struct {
	primary RandomWordsGenerator
}

// NewFallbackWordsGenerator wraps primary so that Generate never comes
// back empty. Pass nil to draw from the built-in pool only.
func NewFallbackWordsGenerator(primary RandomWordsGenerator) *fallbackWordsGenerator {
	return &fallbackWordsGenerator{primary: primary}
}

func (g *fallbackWordsGenerator) Generate(count int) []string {
	if count <= 0 {
		return []string{}
	}

	if g.primary != nil {
		words := g.primary.Generate(count)
		if len(words) >= count {
			return words[:count]
		}
	}

	words := make([]string, 0, count)
	for _, i := range rand.Perm(len(builtinWords)) {
		words = append(words, builtinWords[i])
		if len(words) == count {
			return words
		}
	}
	for len(words) < count {
		words = append(words, builtinWords[rand.Intn(len(builtinWords))])
	}
	return words
}
