package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/xpc-health/rosterflow/cmd/rosterflow/api"
	"github.com/xpc-health/rosterflow/ingest"
	"github.com/xpc-health/rosterflow/xpc"
)

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stdout })).With().Timestamp().Logger()

	pipeline := ingest.NewPipeline(log)

	var submitter *xpc.Submitter
	cfg, err := xpc.ConfigFromEnv()
	if err != nil {
		log.Warn().Err(err).Msg("XPC API not configured, uploads can only be parsed, not submitted")
	} else {
		submitter = xpc.NewSubmitter(xpc.NewClient(cfg, log), log)
	}

	router := api.NewRosterRouter(pipeline, submitter, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("Starting rosterflow")
	if err := http.ListenAndServe(":"+port, router.SetupRoutes()); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
