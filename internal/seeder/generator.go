package seeder

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
)

var ErrUnknownTypeTag = errors.New("unknown type tag")

type DataGenerator struct {
	rand     *rand.Rand
	opts     GeneratorOptions
	alphabet []rune
	strict   bool
}

func NewDataGenerator(opts GeneratorOptions, strict bool) (*DataGenerator, error) {
	if opts.IntMin > opts.IntMax {
		return nil, fmt.Errorf("integer range is empty: [%d, %d]", opts.IntMin, opts.IntMax)
	}
	if opts.TextLength <= 0 {
		return nil, fmt.Errorf("text length must be positive, got %d", opts.TextLength)
	}
	alphabet := []rune(opts.Alphabet)
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("text alphabet is empty")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &DataGenerator{
		rand:     rand.New(rand.NewSource(seed)),
		opts:     opts,
		alphabet: alphabet,
		strict:   strict,
	}, nil
}

// Generate returns one value for a column of the given type. Unknown tags
// yield nil, or ErrUnknownTypeTag in strict mode.
func (g *DataGenerator) Generate(tag types.TypeTag) (interface{}, error) {
	switch tag.Normalize() {
	case types.TypeInteger:
		return g.Int(), nil
	case types.TypeText:
		return g.Text(), nil
	default:
		if g.strict {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTypeTag, string(tag))
		}
		return nil, nil
	}
}

// Row builds one value per column, in column order.
func (g *DataGenerator) Row(columns []types.SchemaColumn) ([]interface{}, error) {
	row := make([]interface{}, len(columns))
	for i, col := range columns {
		val, err := g.Generate(col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		row[i] = val
	}
	return row, nil
}

// Int draws uniformly from the closed range [IntMin, IntMax]. Any range
// that fits in an int is accepted, including [math.MinInt, math.MaxInt].
func (g *DataGenerator) Int() int {
	// Unsigned difference is exact for every IntMin <= IntMax.
	diff := uint64(g.opts.IntMax) - uint64(g.opts.IntMin)
	if diff < math.MaxInt64 {
		return g.opts.IntMin + int(g.rand.Int63n(int64(diff)+1))
	}
	return g.opts.IntMin + int(g.uint64Upto(diff))
}

// uint64Upto returns a uniform value in [0, limit] for limit >= MaxInt64. At most
// one multiple of the span fits in 64 bits, so rejecting v > limit is unbiased.
func (g *DataGenerator) uint64Upto(limit uint64) uint64 {
	for {
		if v := g.rand.Uint64(); v <= limit {
			return v
		}
	}
}

// Text draws TextLength characters from the alphabet, with repetition.
func (g *DataGenerator) Text() string {
	out := make([]rune, g.opts.TextLength)
	for i := range out {
		out[i] = g.alphabet[g.rand.Intn(len(g.alphabet))]
	}
	return string(out)
}
