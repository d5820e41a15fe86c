package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xpc-health/rosterflow/models/roster"
)

var (
	// ErrEmptyInput means the roster text contained no rows at all.
	ErrEmptyInput = errors.New("roster is empty")
	// ErrInsufficientRows means a row-based roster had a header but no data rows.
	ErrInsufficientRows = errors.New("roster does not have enough rows")
	// ErrNoRecords means extraction ran but every candidate record was dropped.
	ErrNoRecords = errors.New("no patient records found in roster")
)

// Pipeline turns raw roster text into an ordered sequence of patient records.
// It is pure computation: no I/O, no shared state, deterministic for a given
// input.
type Pipeline struct {
	log zerolog.Logger
}

// NewPipeline creates a Pipeline with the provided diagnostics logger.
func NewPipeline(log zerolog.Logger) *Pipeline {
	return &Pipeline{log: log}
}

// Parse reads CSV text and runs ParseTable on the result. Ragged rows and
// loosely quoted cells are tolerated the way spreadsheet exports require.
func (p *Pipeline) Parse(text string) ([]roster.PatientRecord, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading roster CSV: %w", err)
	}
	return p.ParseTable(rows)
}

// ParseTable detects the roster orientation, extracts one FieldMap per
// patient, and normalizes each into a PatientRecord. A record that fails to
// normalize is logged and skipped; the batch only fails when there is nothing
// to return at all.
func (p *Pipeline) ParseTable(table roster.RawTable) ([]roster.PatientRecord, error) {
	if len(table) == 0 {
		return nil, ErrEmptyInput
	}

	orientation := DetectOrientation(table)
	if orientation == roster.OrientationUnknown {
		p.log.Warn().
			Int("rows", len(table)).
			Msg("Could not classify roster orientation, assuming row-based")
	}
	p.log.Debug().Stringer("orientation", orientation).Int("rows", len(table)).Msg("Detected roster orientation")

	var fieldMaps []roster.FieldMap
	var err error
	if orientation == roster.OrientationColumnBased {
		fieldMaps = extractColumnBased(table)
	} else {
		fieldMaps, err = extractRowBased(table)
		if err != nil {
			return nil, err
		}
	}

	records := make([]roster.PatientRecord, 0, len(fieldMaps))
	for i, fm := range fieldMaps {
		record, err := Normalize(fm, p.log)
		if err != nil {
			p.log.Warn().Err(err).Int("record", i).Msg("Skipping roster record")
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}
