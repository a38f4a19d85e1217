package batch

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// The scanner ceiling matches the record codec; single rows with long
// reasoning traces must fit in one token.
const maxLineBytes = 16 * 1024 * 1024

type checkpointFile struct {
	name  string
	start int
}

// Consolidate merges all checkpoint files, ordered by their start
// index, into the configured output path (overwriting any previous
// consolidated file). It returns the output path and the total number
// of rows written.
func (p *Processor) Consolidate() (string, int, error) {
	files, err := listCheckpoints(p.opts.CheckpointDir)
	if err != nil {
		return "", 0, err
	}
	if len(files) == 0 {
		return "", 0, fmt.Errorf("no checkpoint files found in %s", p.opts.CheckpointDir)
	}

	tmp := p.opts.OutputPath + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create consolidated file %s: %w", tmp, err)
	}
	defer os.Remove(tmp)

	w := bufio.NewWriter(out)
	total := 0

	for _, cf := range files {
		n, err := appendCheckpoint(w, filepath.Join(p.opts.CheckpointDir, cf.name))
		if err != nil {
			out.Close()
			return "", 0, err
		}
		total += n
	}

	if err := w.Flush(); err != nil {
		out.Close()
		return "", 0, fmt.Errorf("failed to write consolidated file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to write consolidated file: %w", err)
	}
	if err := os.Rename(tmp, p.opts.OutputPath); err != nil {
		return "", 0, fmt.Errorf("failed to finalize consolidated file %s: %w", p.opts.OutputPath, err)
	}

	fmt.Printf("Combined %d checkpoint files into %s (%d rows)\n", len(files), p.opts.OutputPath, total)
	return p.opts.OutputPath, total, nil
}

// listCheckpoints returns the batch_<start>-<last>.jsonl files of a
// checkpoint directory sorted by start index. Temp files and anything
// else in the directory are ignored.
func listCheckpoints(dir string) ([]checkpointFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint directory %s: %w", dir, err)
	}

	var files []checkpointFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		var start, last int
		if n, err := fmt.Sscanf(entry.Name(), "batch_%d-%d.jsonl", &start, &last); err != nil || n != 2 {
			continue
		}
		if filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}
		files = append(files, checkpointFile{name: entry.Name(), start: start})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].start < files[j].start })
	return files, nil
}

// appendCheckpoint copies one checkpoint's lines to the writer and
// returns the row count.
func appendCheckpoint(w *bufio.Writer, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open checkpoint file %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	rows := 0
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		if _, err := w.Write(sc.Bytes()); err != nil {
			return 0, fmt.Errorf("failed to write consolidated file: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return 0, fmt.Errorf("failed to write consolidated file: %w", err)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("failed to read checkpoint file %s: %w", path, err)
	}
	return rows, nil
}
