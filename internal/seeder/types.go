package seeder

import (
	"time"

	"github.com/Lumos-Labs-HQ/rowseed/internal/config"
	"github.com/Lumos-Labs-HQ/rowseed/internal/types"
)

type SeedConfig struct {
	Table         types.SchemaTable // columns in insert order, plus indexes to ensure
	Rows          int               // rows appended per run
	Strict        bool              // fail on unknown type tags instead of writing NULL
	Profile       string
	RecordRuns    bool // write a row to the runs ledger inside the seeding transaction
	ProgressEvery int
	Quiet         bool
	Generator     GeneratorOptions
}

type GeneratorOptions struct {
	IntMin     int
	IntMax     int
	TextLength int
	Alphabet   string
	Seed       int64 // 0 seeds from the clock
}

type Result struct {
	RunID        string
	Table        string
	RowsInserted int
	RowsBefore   int
	RowsAfter    int
	NullColumns  []string // columns written as NULL because of an unknown type tag
	Duration     time.Duration
}

func NewSeedConfig(cfg *config.Config) SeedConfig {
	return SeedConfig{
		Table:         cfg.Table(),
		Rows:          cfg.Seed.Rows,
		Strict:        cfg.Seed.Strict,
		Profile:       cfg.Seed.Profile,
		RecordRuns:    cfg.Seed.RecordRuns,
		ProgressEvery: cfg.Seed.ProgressEvery,
		Quiet:         cfg.Seed.Quiet,
		Generator: GeneratorOptions{
			IntMin:     cfg.Seed.IntMin,
			IntMax:     cfg.Seed.IntMax,
			TextLength: cfg.Seed.TextLength,
			Alphabet:   cfg.Seed.Alphabet,
			Seed:       cfg.Seed.RandomSeed,
		},
	}
}
