package datasource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/xpc-health/rosterflow/models/roster"
)

// Source produces one raw roster table. The ingestion pipeline does not care
// whether the table came from a CSV export, an XLSX workbook, or a staging
// table in the clinic database.
type Source interface {
	Read() (roster.RawTable, error)
}

// CSVFile reads a roster from a comma-separated file on disk.
type CSVFile struct {
	path string
	log  zerolog.Logger
}

// NewCSVFile creates a CSVFile source for the given path.
func NewCSVFile(path string, log zerolog.Logger) *CSVFile {
	return &CSVFile{path: path, log: log}
}

func (s *CSVFile) Read() (roster.RawTable, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("error opening roster file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading roster CSV %s: %w", s.path, err)
	}
	s.log.Debug().Str("path", s.path).Int("rows", len(rows)).Msg("Read CSV roster")
	return rows, nil
}

// XLSXFile reads a roster from a sheet of an Excel workbook, so clinic staff
// can upload their spreadsheets without exporting to CSV first. An empty
// sheet name selects the first sheet.
type XLSXFile struct {
	path  string
	sheet string
	log   zerolog.Logger
}

// NewXLSXFile creates an XLSXFile source for the given path and sheet.
func NewXLSXFile(path, sheet string, log zerolog.Logger) *XLSXFile {
	return &XLSXFile{path: path, sheet: sheet, log: log}
}

func (s *XLSXFile) Read() (roster.RawTable, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readSheet(f, s.sheet, s.log)
}

// ReadXLSX reads a roster sheet from an already-open workbook stream, as
// handed over by a multipart upload.
func ReadXLSX(r io.Reader, sheet string, log zerolog.Logger) (roster.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readSheet(f, sheet, log)
}

func readSheet(f *excelize.File, sheet string, log zerolog.Logger) (roster.RawTable, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheet, err)
	}
	log.Debug().Str("sheet", sheet).Int("rows", len(rows)).Msg("Read XLSX roster")
	return rows, nil
}

// SQLTable reads a roster out of a staging table. The query's column names
// become the header row, so the result always looks row-based to the
// detector.
type SQLTable struct {
	db    *sqlx.DB
	query string
	log   zerolog.Logger
}

// NewSQLTable creates a SQLTable source for the given connection and query.
func NewSQLTable(db *sqlx.DB, query string, log zerolog.Logger) *SQLTable {
	return &SQLTable{db: db, query: query, log: log}
}

func (s *SQLTable) Read() (roster.RawTable, error) {
	rows, err := s.db.Queryx(s.query)
	if err != nil {
		return nil, fmt.Errorf("error executing roster query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("error reading roster columns: %w", err)
	}

	table := roster.RawTable{columns}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}
		row := make([]string, len(values))
		for i, value := range values {
			row[i] = cellString(value)
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over roster rows: %w", err)
	}

	s.log.Debug().Int("rows", len(table)-1).Msg("Read SQL roster")
	return table, nil
}

func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
