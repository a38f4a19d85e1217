package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/arabify/internal/dataset"
)

// RowSource provides random access to the source dataset rows
type RowSource interface {
	NumRows(ctx context.Context) (int, error)
	Rows(ctx context.Context, offset, length int) ([]dataset.Record, error)
}

// FieldTranslator translates one text value
type FieldTranslator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Options configures a batch processor
type Options struct {
	// StartIndex is the first row index to process. Pointing it at the
	// start of the batch that was interrupted resumes a previous run.
	StartIndex int
	// BatchSize is the number of rows per checkpoint file
	BatchSize int
	// MaxSamples limits how many rows are processed; 0 means all
	MaxSamples int
	// Fields are the record fields to translate
	Fields []string
	// CheckpointDir holds the per-batch checkpoint files
	CheckpointDir string
	// OutputPath is the consolidated JSONL file
	OutputPath string
}

// Processor runs the checkpointed translation loop
type Processor struct {
	opts Options
	src  RowSource
	tr   FieldTranslator
}

// NewProcessor creates a batch processor
func NewProcessor(opts Options, src RowSource, tr FieldTranslator) *Processor {
	return &Processor{opts: opts, src: src, tr: tr}
}

// CheckpointPath returns the checkpoint file path for the half-open
// row range [start, end). The file name carries the inclusive last
// index (batch_100-199.jsonl), matching the established layout of
// existing checkpoint directories.
func CheckpointPath(dir string, start, end int) string {
	return filepath.Join(dir, fmt.Sprintf("batch_%d-%d.jsonl", start, end-1))
}

// Run processes all remaining batches. Completed batches (checkpoint
// file present) are skipped without fetching rows or calling the API.
// Any translation or I/O failure aborts the run; checkpoints written
// so far stay valid, so rerunning continues at the failed batch.
func (p *Processor) Run(ctx context.Context) error {
	total, err := p.src.NumRows(ctx)
	if err != nil {
		return fmt.Errorf("failed to determine dataset size: %w", err)
	}

	end := total
	if p.opts.MaxSamples > 0 && p.opts.StartIndex+p.opts.MaxSamples < total {
		end = p.opts.StartIndex + p.opts.MaxSamples
	}

	fmt.Printf("Total rows in dataset: %d\n", total)
	if p.opts.StartIndex >= end {
		fmt.Printf("Start index %d is at or past the end index %d, nothing to translate\n", p.opts.StartIndex, end)
		return nil
	}
	fmt.Printf("Processing rows %d to %d\n", p.opts.StartIndex, end-1)

	if err := os.MkdirAll(p.opts.CheckpointDir, 0755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory %s: %w", p.opts.CheckpointDir, err)
	}

	processed := 0
	skipped := 0

	for start := p.opts.StartIndex; start < end; start += p.opts.BatchSize {
		batchEnd := start + p.opts.BatchSize
		if batchEnd > end {
			batchEnd = end
		}

		path := CheckpointPath(p.opts.CheckpointDir, start, batchEnd)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Checkpoint already exists, skipping: %s\n", filepath.Base(path))
			skipped++
			continue
		}

		fmt.Printf("Translating batch %d-%d...\n", start, batchEnd-1)
		if err := p.processBatch(ctx, start, batchEnd, path); err != nil {
			return fmt.Errorf("batch %d-%d failed: %w", start, batchEnd-1, err)
		}
		processed++
	}

	fmt.Printf("\n=== Translation Summary ===\n")
	fmt.Printf("Batches translated: %d\n", processed)
	fmt.Printf("Batches skipped (checkpoint present): %d\n", skipped)
	return nil
}

// processBatch translates one row range and persists its checkpoint.
// The checkpoint is written to a temp file and renamed into place, so
// a checkpoint file either exists complete or not at all.
func (p *Processor) processBatch(ctx context.Context, start, end int, path string) error {
	rows, err := p.src.Rows(ctx, start, end-start)
	if err != nil {
		return err
	}
	if len(rows) != end-start {
		return fmt.Errorf("expected %d rows, source returned %d", end-start, len(rows))
	}

	translated := make([]dataset.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := p.translateRecord(ctx, row)
		if err != nil {
			return fmt.Errorf("row %d: %w", start+i, err)
		}
		translated = append(translated, rec)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file %s: %w", tmp, err)
	}
	if err := dataset.WriteJSONL(f, translated); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write checkpoint file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize checkpoint file %s: %w", path, err)
	}

	fmt.Printf("Checkpoint saved: %s\n", filepath.Base(path))
	return nil
}

// translateRecord returns a copy of the record with the configured
// fields translated. Only non-empty string values are sent to the API;
// numbers, nulls and nested values pass through verbatim.
func (p *Processor) translateRecord(ctx context.Context, rec dataset.Record) (dataset.Record, error) {
	out := make(dataset.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}

	for _, field := range p.opts.Fields {
		value, ok := out[field]
		if !ok {
			continue
		}
		text, ok := value.(string)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}

		translated, err := p.tr.Translate(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		out[field] = translated
	}
	return out, nil
}
