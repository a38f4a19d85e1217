// Package testutil holds hand-rolled test doubles shared by the
// package tests.
package testutil

import (
	"context"
	"fmt"
	"net/http"

	"codeberg.org/snonux/arabify/internal/dataset"
)

// MockTranslator mocks the field translator
type MockTranslator struct {
	// Translations maps source text to its mocked translation
	Translations map[string]string
	// Errors maps source text to a forced error
	Errors map[string]error
	// Calls records every translated text in order
	Calls []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text string) (string, error) {
	m.Calls = append(m.Calls, text)

	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if translated, ok := m.Translations[text]; ok {
		return translated, nil
	}

	// Default mock translation
	return "ar:" + text, nil
}

// MockRowSource serves dataset rows from memory
type MockRowSource struct {
	Records []dataset.Record
	// NumRowsErr forces NumRows to fail
	NumRowsErr error
	// RowsErr forces Rows to fail
	RowsErr error
	// RowCalls records every (offset, length) pair requested
	RowCalls [][2]int
}

// NumRows returns the in-memory row count
func (m *MockRowSource) NumRows(ctx context.Context) (int, error) {
	if m.NumRowsErr != nil {
		return 0, m.NumRowsErr
	}
	return len(m.Records), nil
}

// Rows returns in-memory rows by range
func (m *MockRowSource) Rows(ctx context.Context, offset, length int) ([]dataset.Record, error) {
	m.RowCalls = append(m.RowCalls, [2]int{offset, length})

	if m.RowsErr != nil {
		return nil, m.RowsErr
	}
	if offset < 0 || offset+length > len(m.Records) {
		return nil, fmt.Errorf("range [%d, %d) out of bounds", offset, offset+length)
	}
	return m.Records[offset : offset+length], nil
}

// RoundTripFunc adapts a function to http.RoundTripper for stubbing
// HTTP clients in tests.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls the wrapped function
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
