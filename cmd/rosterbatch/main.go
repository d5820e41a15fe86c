package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/xpc-health/rosterflow/datasource"
	"github.com/xpc-health/rosterflow/ingest"
	"github.com/xpc-health/rosterflow/xpc"
)

func main() {
	csvPath := flag.String("csv", "", "path to a roster CSV file")
	xlsxPath := flag.String("xlsx", "", "path to a roster XLSX workbook")
	sheet := flag.String("sheet", "", "XLSX sheet name (default: first sheet)")
	dsn := flag.String("dsn", "", "Postgres DSN of the roster staging database")
	query := flag.String("query", "", "SQL query selecting the roster rows (with -dsn)")
	send := flag.Bool("send", false, "submit the parsed records to the XPC API")
	flag.Parse()

	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stdout })).With().Timestamp().Logger()

	source, err := selectSource(*csvPath, *xlsxPath, *sheet, *dsn, *query, log)
	if err != nil {
		flag.Usage()
		log.Fatal().Err(err).Msg("No roster source selected")
	}

	table, err := source.Read()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read roster")
	}

	records, err := ingest.NewPipeline(log).ParseTable(table)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse roster")
	}
	log.Info().Int("records", len(records)).Msg("Parsed roster")

	if !*send {
		printJSON(records)
		return
	}

	cfg, err := xpc.ConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("XPC API not configured")
	}
	submitter := xpc.NewSubmitter(xpc.NewClient(cfg, log), log)
	printJSON(submitter.Submit(records))
}

func selectSource(csvPath, xlsxPath, sheet, dsn, query string, log zerolog.Logger) (datasource.Source, error) {
	switch {
	case csvPath != "":
		return datasource.NewCSVFile(csvPath, log), nil
	case xlsxPath != "":
		return datasource.NewXLSXFile(xlsxPath, sheet, log), nil
	case dsn != "":
		if query == "" {
			return nil, fmt.Errorf("-dsn requires -query")
		}
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to the database: %w", err)
		}
		return datasource.NewSQLTable(db, query, log), nil
	default:
		return nil, fmt.Errorf("one of -csv, -xlsx or -dsn is required")
	}
}

func printJSON(data any) {
	if out, err := json.MarshalIndent(data, "", "  "); err == nil {
		fmt.Println(string(out))
	}
}
