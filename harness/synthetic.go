package harness

import (
	"context"
	"math/rand"
	"strings"
)

// synthConfig holds SyntheticGenerator's tunables, mutated only through
// Option constructors (adapted from lvlath/builder's functional-options
// pattern: determinism is explicit via WithSeed/WithRand, never a hidden
// global RNG).
type synthConfig struct {
	rng        *rand.Rand
	alphabet   string
	readLength int
	source     string
}

// Option customizes a SyntheticGenerator before construction.
type Option func(*synthConfig)

// WithSeed makes read draws reproducible.
func WithSeed(seed int64) Option {
	return func(c *synthConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies an explicit RNG. Options apply in order, so it replaces
// an RNG set by an earlier WithSeed and is replaced by a later one.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("harness: WithRand(nil)")
	}
	return func(c *synthConfig) { c.rng = r }
}

// WithAlphabet overrides the 4-letter default alphabet reads are drawn
// from (spec §1: "a 4-letter alphabet").
func WithAlphabet(alphabet string) Option {
	if alphabet == "" {
		panic("harness: WithAlphabet(\"\")")
	}
	return func(c *synthConfig) { c.alphabet = alphabet }
}

// WithReadLength overrides the fixed length of each generated read.
func WithReadLength(n int) Option {
	if n <= 0 {
		panic("harness: WithReadLength(n<=0)")
	}
	return func(c *synthConfig) { c.readLength = n }
}

// WithSourceString fixes the underlying string reads are sampled from,
// instead of drawing one randomly from the alphabet.
func WithSourceString(s string) Option {
	if s == "" {
		panic("harness: WithSourceString(\"\")")
	}
	return func(c *synthConfig) { c.source = s }
}

// SyntheticGenerator is a test-only harness.ReadGenerator: it samples
// fixed-length substrings with redundancy from a single underlying string,
// reproducing the "reads drawn with redundancy from an unknown longer
// string" setup spec §1 describes as an external collaborator's job.
type SyntheticGenerator struct {
	cfg synthConfig
}

// NewSyntheticGenerator builds a SyntheticGenerator. With no WithSourceString
// option, a random source string is drawn from the configured alphabet.
func NewSyntheticGenerator(sourceLength int, opts ...Option) *SyntheticGenerator {
	cfg := synthConfig{
		rng:        rand.New(rand.NewSource(1)),
		alphabet:   "ACGT",
		readLength: 8,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.source == "" {
		cfg.source = randomString(cfg.rng, cfg.alphabet, sourceLength)
	}
	return &SyntheticGenerator{cfg: cfg}
}

// Source returns the underlying string reads are drawn from.
func (g *SyntheticGenerator) Source() string { return g.cfg.source }

// GenerateReads draws n fixed-length reads uniformly at random from g's
// source string, with redundancy (the same substring may recur).
func (g *SyntheticGenerator) GenerateReads(ctx context.Context, n int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := g.cfg.source
	readLen := g.cfg.readLength
	if readLen > len(src) {
		readLen = len(src)
	}
	maxStart := len(src) - readLen

	reads := make([]string, n)
	for i := range reads {
		start := 0
		if maxStart > 0 {
			start = g.cfg.rng.Intn(maxStart + 1)
		}
		reads[i] = src[start : start+readLen]
	}
	return reads, nil
}

func randomString(rng *rand.Rand, alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rng.Intn(len(alphabet))])
	}
	return b.String()
}
