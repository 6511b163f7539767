// Command inspect-profile prints the stored entries of one profile
// namespace and the gate decision they produce, as JSON on stdout. It only
// works against the redis or postgres drivers; the memory store lives
// inside the server process.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/app"
	"github.com/heartmarshall/mirrorme-backend/internal/config"
	"github.com/heartmarshall/mirrorme-backend/internal/domain"
	"github.com/heartmarshall/mirrorme-backend/internal/service/gate"
	"github.com/heartmarshall/mirrorme-backend/internal/store"
)

type report struct {
	ProfileID uuid.UUID         `json:"profileId"`
	Driver    string            `json:"driver"`
	Entries   map[string]string `json:"entries"`
	Decision  domain.Decision   `json:"decision"`
}

// checkDriver rejects backends another process cannot read.
func checkDriver(driver string) error {
	switch driver {
	case config.DriverRedis, config.DriverPostgres:
		return nil
	default:
		return fmt.Errorf("inspect-profile needs the redis or postgres storage driver, got %q", driver)
	}
}

func main() {
	rawID := flag.String("profile", "", "profile ID (uuid)")
	flag.Parse()

	profileID, err := uuid.Parse(*rawID)
	if err != nil {
		log.Fatalf("invalid -profile %q: %v", *rawID, err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLoggerTo(os.Stderr, cfg.Log)

	if err := checkDriver(cfg.Storage.Driver); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, closeStorage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer closeStorage()

	obs := store.NewObservable(logger, st.Backend, nil, "inspect-profile")
	g := gate.NewService(logger, obs, obs, st.Tx, cfg.Gate)

	entries, err := obs.Snapshot(ctx, profileID)
	if err != nil {
		log.Fatalf("snapshot: %v", err)
	}
	decision, err := g.Decide(ctx, profileID)
	if err != nil {
		log.Fatalf("decide: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report{
		ProfileID: profileID,
		Driver:    st.Driver,
		Entries:   entries,
		Decision:  decision,
	}); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
