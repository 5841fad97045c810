// Package record defines the ingestion input record and its CSV loader.
//
// One CSV row is one indexable unit. The loader does no chunking and no
// text cleanup beyond what the CSV format itself requires; trimming and
// empty-text filtering belong to the ingestion pipeline.
package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMissingTextColumn is returned when the dataset header has no "text"
// column. This is checked before any embedding work so a malformed input
// never builds a partial index.
var ErrMissingTextColumn = errors.New(`dataset has no "text" column`)

// Record is a single ingestion input row.
type Record struct {
	// ID uniquely identifies the record within a collection. Re-ingesting
	// the same ID overwrites the prior entry.
	ID string

	// Text is the indexable content.
	Text string

	// SourceURL is the attribution URL carried into retrieval results.
	// Empty when the dataset has no source_url column.
	SourceURL string
}

// LoadCSV reads records from CSV data with a header row.
//
// The header must contain a "text" column. Optional columns:
//   - "index": used as the record ID; absent, the ID defaults to the
//     record's zero-based row position
//   - "source_url": attribution metadata
//
// Column matching is case-insensitive. Any other columns are ignored.
func LoadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingTextColumn
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	textCol, indexCol, sourceCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "text":
			textCol = i
		case "index":
			indexCol = i
		case "source_url":
			sourceCol = i
		}
	}

	if textCol < 0 {
		return nil, ErrMissingTextColumn
	}

	var records []Record
	for row := 0; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row %d: %w", row, err)
		}

		rec := Record{
			ID:   strconv.Itoa(row),
			Text: fields[textCol],
		}
		if indexCol >= 0 && fields[indexCol] != "" {
			rec.ID = fields[indexCol]
		}
		if sourceCol >= 0 {
			rec.SourceURL = fields[sourceCol]
		}

		records = append(records, rec)
	}

	return records, nil
}

// LoadCSVFile reads records from a CSV file on disk.
func LoadCSVFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	return LoadCSV(f)
}
