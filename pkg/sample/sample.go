// Package sample generates deterministic synthetic water-system readings.
//
// The generated table stands in for real data whenever a log file cannot be
// parsed, so downstream consumers always receive a well-formed table.
package sample

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gobioeng/halog/pkg/table"
)

// Defaults used for fallback data.
const (
	DefaultRows         = 100
	DefaultSeed  uint64 = 42
	BasePressure        = 45.0
)

// DefaultStart is the timestamp of the first generated row.
var DefaultStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// DefaultInterval is the spacing between generated rows.
const DefaultInterval = time.Hour

// Generator produces synthetic tables.
type Generator struct {
	rows     int
	seed     uint64
	start    time.Time
	interval time.Duration
}

// Option configures the Generator.
type Option func(*Generator)

// WithRows sets the number of rows (default 100).
func WithRows(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.rows = n
		}
	}
}

// WithSeed sets the PRNG seed (default 42).
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithStart sets the first row's timestamp.
func WithStart(t time.Time) Option {
	return func(g *Generator) {
		if !t.IsZero() {
			g.start = t
		}
	}
}

// WithInterval sets the spacing between rows.
func WithInterval(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.interval = d
		}
	}
}

// New creates a Generator with the default settings.
func New(opts ...Option) *Generator {
	g := &Generator{
		rows:     DefaultRows,
		seed:     DefaultSeed,
		start:    DefaultStart,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the synthetic table. The PRNG is reseeded on every call,
// so repeated calls return identical tables.
//
// For row i three normal draws are consumed in order: the main noise
// N(0,1), the min offset N(2,0.5) and the max offset N(2,0.5).
func (g *Generator) Generate() *table.Table {
	rng := rand.New(rand.NewPCG(g.seed, 0))

	rows := make([]table.Row, 0, g.rows)
	for i := 0; i < g.rows; i++ {
		noise := rng.NormFloat64()
		minOffset := normal(rng, 2, 0.5)
		maxOffset := normal(rng, 2, 0.5)

		avg := BasePressure + 2*math.Sin(float64(i)*0.1) + noise
		rows = append(rows, table.Row{
			Timestamp: g.start.Add(time.Duration(i) * g.interval),
			Min:       avg - math.Abs(minOffset),
			Max:       avg + math.Abs(maxOffset),
			Avg:       avg,
		})
	}

	return table.New(rows)
}

// Generate returns the default 100-row fallback table.
func Generate() *table.Table {
	return New().Generate()
}

func normal(rng *rand.Rand, mean, stddev float64) float64 {
	return mean + stddev*rng.NormFloat64()
}
