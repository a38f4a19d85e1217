package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Record is one dataset row, field name to value. Values keep the JSON
// types of the source dataset; only configured string fields are ever
// rewritten by the translator.
type Record = map[string]any

// Reasoning traces in the source dataset can run to tens of kilobytes
// per row, so the line scanner needs a generous ceiling.
const maxLineBytes = 16 * 1024 * 1024

// WriteJSONL writes records as line-delimited JSON. HTML escaping is
// disabled so Arabic text and formulas stay readable in the output.
func WriteJSONL(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadJSONL reads line-delimited JSON records until EOF
func ReadJSONL(r io.Reader) ([]Record, error) {
	var records []Record

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}
