// Command obsdump runs a station's feed text through the same parsing path as
// the service and prints the normalized observation as JSON. It reads saved
// feed snapshots from files, or fetches the live feeds once with -fetch.
//
// Usage:
//
//	go run ./cmd/obsdump -tabular realtime2.txt -narrative latest_obs.txt
//	go run ./cmd/obsdump -fetch -station 46042
//
// On a terminal parse failure the diagnostics are printed to stderr and the
// command exits non-zero.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/marine-obs-service/internal/adapter/ndbc"
	"github.com/couchcryptid/marine-obs-service/internal/config"
	"github.com/couchcryptid/marine-obs-service/internal/domain"
	"github.com/couchcryptid/marine-obs-service/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	tabularPath := flag.String("tabular", "", "path to a saved tabular feed file")
	narrativePath := flag.String("narrative", "", "path to a saved narrative report file")
	fetch := flag.Bool("fetch", false, "fetch the live feeds instead of reading files")
	station := flag.String("station", "46042", "station identifier")
	baseURL := flag.String("base-url", "https://www.ndbc.noaa.gov", "feed host, for -fetch")
	flag.Parse()

	var tabularText, narrativeText string
	var err error

	switch {
	case *fetch:
		tabularText, narrativeText = fetchFeeds(*station, *baseURL)
	case *tabularPath == "" && *narrativePath == "":
		flag.Usage()
		return fmt.Errorf("missing input: provide -tabular and/or -narrative, or use -fetch")
	default:
		if tabularText, err = readIfSet(*tabularPath); err != nil {
			return fmt.Errorf("read tabular feed: %w", err)
		}
		if narrativeText, err = readIfSet(*narrativePath); err != nil {
			return fmt.Errorf("read narrative report: %w", err)
		}
	}

	obs, err := domain.ParseObservation(tabularText, narrativeText)
	if err != nil {
		var pf *domain.ParseFailure
		if errors.As(err, &pf) {
			diag, merr := json.MarshalIndent(pf.Diag, "", "  ")
			if merr == nil {
				fmt.Fprintf(os.Stderr, "diagnostics:\n%s\n", diag)
			}
		}
		return err
	}
	obs.StationID = *station

	out, err := json.MarshalIndent(obs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode observation: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// fetchFeeds retrieves both live feeds, tolerating the loss of either one the
// same way the service pipeline does.
func fetchFeeds(station, baseURL string) (tabular, narrative string) {
	cfg := &config.Config{
		StationID:    station,
		FeedBaseURL:  strings.TrimRight(baseURL, "/"),
		FetchTimeout: 10 * time.Second,
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client := ndbc.NewClient(cfg, observability.NewMetrics(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	if tabular, err = client.FetchTabular(ctx); err != nil {
		logger.Warn("tabular feed unavailable", "error", err)
	}
	if narrative, err = client.FetchNarrative(ctx); err != nil {
		logger.Warn("narrative report unavailable", "error", err)
	}
	return tabular, narrative
}

func readIfSet(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
