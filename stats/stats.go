// Package stats accumulates summary statistics over a record stream.
package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/biostream/errs"
	"github.com/arloliu/biostream/internal/collision"
	"github.com/arloliu/biostream/internal/options"
	"github.com/arloliu/biostream/record"
)

// Collector accumulates record statistics.
//
// Note: The Collector is NOT thread-safe.
type Collector struct {
	tracker     *collision.Tracker
	trackByName bool

	records       int64
	bases         int64
	minLen        int
	maxLen        int
	qualitySum    int64
	qualityBases  int64
	qualityRecord int64
	duplicates    int64
}

// Option configures a Collector.
type Option = options.Option[*Collector]

// WithDuplicateTracking makes the collector remember every identifier and
// count repeats. Memory use grows with the number of distinct identifiers.
func WithDuplicateTracking() Option {
	return options.NoError(func(c *Collector) {
		c.tracker = collision.NewTracker()
	})
}

// WithNameOnly compares identifiers up to the first whitespace when
// tracking duplicates, ignoring descriptions.
func WithNameOnly() Option {
	return options.NoError(func(c *Collector) {
		c.trackByName = true
	})
}

// NewCollector creates an empty collector.
func NewCollector(opts ...Option) (*Collector, error) {
	c := &Collector{minLen: math.MaxInt}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Add accounts for one record with the given identifier, sequence length
// and quality scores (nil for FASTA).
//
// Returns errs.ErrDuplicateID when duplicate tracking is enabled and the
// identifier was seen before. The record is counted either way.
func (c *Collector) Add(id []byte, seqLen int, quality []record.Phred) error {
	c.records++
	c.bases += int64(seqLen)
	c.minLen = min(c.minLen, seqLen)
	c.maxLen = max(c.maxLen, seqLen)

	if quality != nil {
		c.qualityRecord++
		for _, q := range quality {
			c.qualitySum += int64(q.Score())
		}
		c.qualityBases += int64(len(quality))
	}

	if c.tracker == nil {
		return nil
	}
	if c.trackByName {
		id = record.Record[struct{}]{ID: id}.Name()
	}
	err := c.tracker.Track(id)
	if errors.Is(err, errs.ErrDuplicateID) {
		c.duplicates++
		return fmt.Errorf("%w: %s", err, id)
	}

	return err
}

// AddRecord is Add for a raw record.
func (c *Collector) AddRecord(rec record.Record[[]byte]) error {
	return c.Add(rec.ID, len(rec.Seq), rec.Quality)
}

// Summary is a snapshot of the collected statistics.
type Summary struct {
	Records    int64   `json:"records" yaml:"records"`
	Bases      int64   `json:"bases" yaml:"bases"`
	MinLength  int     `json:"min_length" yaml:"min_length"`
	MaxLength  int     `json:"max_length" yaml:"max_length"`
	MeanLength float64 `json:"mean_length" yaml:"mean_length"`
	// MeanQuality is the mean Phred score over all bases of records with
	// quality, 0 when there were none.
	MeanQuality float64 `json:"mean_quality" yaml:"mean_quality"`
	// QualityRecords counts the records that carried quality scores.
	QualityRecords int64 `json:"quality_records" yaml:"quality_records"`
	// Duplicates counts repeated identifiers, UniqueIDs the distinct ones,
	// and DuplicateIDs lists each repeated identifier once. All are empty
	// without duplicate tracking.
	Duplicates   int64    `json:"duplicates" yaml:"duplicates"`
	UniqueIDs    int      `json:"unique_ids,omitempty" yaml:"unique_ids,omitempty"`
	DuplicateIDs []string `json:"duplicate_ids,omitempty" yaml:"duplicate_ids,omitempty"`
	// HashCollisions reports whether the duplicate tracker had to fall back
	// to exact comparison.
	HashCollisions bool `json:"hash_collisions" yaml:"hash_collisions"`
}

// Summary returns the statistics collected so far.
func (c *Collector) Summary() Summary {
	s := Summary{
		Records:        c.records,
		Bases:          c.bases,
		MaxLength:      c.maxLen,
		QualityRecords: c.qualityRecord,
		Duplicates:     c.duplicates,
	}
	if c.records > 0 {
		s.MinLength = c.minLen
		s.MeanLength = float64(c.bases) / float64(c.records)
	}
	if c.qualityBases > 0 {
		s.MeanQuality = float64(c.qualitySum) / float64(c.qualityBases)
	}
	if c.tracker != nil {
		s.UniqueIDs = c.tracker.Unique()
		s.DuplicateIDs = append([]string(nil), c.tracker.Duplicates()...)
		s.HashCollisions = c.tracker.HasCollision()
	}

	return s
}

// Reset clears all statistics, keeping the configured options.
func (c *Collector) Reset() {
	c.records, c.bases = 0, 0
	c.minLen, c.maxLen = math.MaxInt, 0
	c.qualitySum, c.qualityBases, c.qualityRecord = 0, 0, 0
	c.duplicates = 0
	if c.tracker != nil {
		c.tracker.Reset()
	}
}
