// Package batch contains the core translation loop. It walks the
// source dataset in fixed-size index ranges, writes one checkpoint
// file per completed batch, skips batches whose checkpoint already
// exists so interrupted runs can resume, and merges all checkpoints
// into the consolidated output file.
package batch
