// Package corpus generates random texts and dictionaries for property tests.
package corpus

import (
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-style-checker/internal/dictionary"
)

// SeedEnv names the environment variable that pins the random seed.
const SeedEnv = "STYLECHECK_SEED"

// Vocabulary mixes Latin and Arabic words, some of which are prefixes or
// suffixes of others, so that word-boundary handling is exercised.
var Vocabulary = []string{
	"teh", "Teh", "TEH", "tehran", "the", "cat", "colour", "colourful",
	"phone", "alphabetically", "x_y", "a1", "إنشاء", "الله", "مسئول", "مسئولية",
	"كَتَبَ", "درسًا", "ΣΟΦΙΑ", "σοφια",
}

// Separators are non-word runs placed between words.
var Separators = []string{" ", "  ", ", ", ".", "\n", "\t", "، ", "-", "(", ") ", "«", "»", "!"}

// RandSource returns a seeded source and logs the seed so that failures can
// be replayed with STYLECHECK_SEED.
func RandSource(t *testing.T) rand.Source {
	var seed int64
	if os.Getenv(SeedEnv) == "" {
		seed = time.Now().UnixNano()
	} else {
		envSeed, err := strconv.ParseInt(os.Getenv(SeedEnv), 10, 64)
		require.NoError(t, err)
		seed = envSeed
	}
	t.Logf("seed: %d (set %s to replay)", seed, SeedEnv)
	return rand.NewSource(seed)
}

// Generator produces texts built from Vocabulary and Separators, and
// dictionaries drawn from Vocabulary.
type Generator struct {
	texts *fuzz.Fuzzer
	dicts *fuzz.Fuzzer
}

// NewGenerator creates a generator on top of source.
func NewGenerator(source rand.Source) *Generator {
	texts := fuzz.New().NilChance(0).RandSource(source).Funcs(func(s *string, c fuzz.Continue) {
		var sb strings.Builder
		words := c.Intn(40)
		for i := 0; i < words; i++ {
			if i > 0 || c.RandBool() {
				sb.WriteString(Separators[c.Intn(len(Separators))])
			}
			sb.WriteString(Vocabulary[c.Intn(len(Vocabulary))])
		}
		if c.RandBool() {
			sb.WriteString(Separators[c.Intn(len(Separators))])
		}
		*s = sb.String()
	})

	dicts := fuzz.New().NilChance(0).RandSource(source).Funcs(func(pairs *[]string, c fuzz.Continue) {
		size := c.Intn(6)
		out := make([]string, 0, size*2)
		for i := 0; i < size; i++ {
			out = append(out, Vocabulary[c.Intn(len(Vocabulary))], "fix"+strconv.Itoa(i))
		}
		*pairs = out
	})

	return &Generator{texts: texts, dicts: dicts}
}

// Text returns a random text.
func (g *Generator) Text() string {
	var s string
	g.texts.Fuzz(&s)
	return s
}

// Dictionary returns a random dictionary of single-word terms.
func (g *Generator) Dictionary() *dictionary.Dictionary {
	var pairs []string
	g.dicts.Fuzz(&pairs)
	return dictionary.MustFromPairs(pairs...)
}
