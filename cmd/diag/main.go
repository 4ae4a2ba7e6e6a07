// Command diag prints every registered conversion for one instant. Useful
// for eyeballing the tables after a data update without starting the
// server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Lexorius/alternative-time/internal/calendar"
	"github.com/Lexorius/alternative-time/internal/eop"
	"github.com/Lexorius/alternative-time/internal/i18n"
	"github.com/Lexorius/alternative-time/internal/lunar"
	"github.com/Lexorius/alternative-time/internal/refdata"
	"github.com/Lexorius/alternative-time/internal/rotation"
	"github.com/Lexorius/alternative-time/internal/stellar"
	"github.com/Lexorius/alternative-time/internal/timescale"
)

func main() {
	at := flag.String("at", "", "instant to convert (RFC 3339, default now)")
	locale := flag.String("locale", "en", "label locale")
	eopURL := flag.String("eop-url", os.Getenv("ALTTIME_EOP_URL"), "Earth-orientation bulletin URL")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	instant := time.Now().UTC()
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad -at value %q: %v\n", *at, err)
			os.Exit(2)
		}
		instant = t.UTC()
	}

	table, err := timescale.LoadTable(refdata.LeapSeconds)
	if err != nil {
		fatal(err)
	}
	catalog, err := stellar.LoadCatalog(refdata.Stars)
	if err != nil {
		fatal(err)
	}
	labels, err := i18n.Load(refdata.Labels)
	if err != nil {
		fatal(err)
	}

	cache := eop.NewCache(eop.NewFetcher(*eopURL, 10*time.Second, logger),
		6*time.Hour, 10*time.Second, logger)

	registry := calendar.Builtin(calendar.Deps{
		Timescale: timescale.NewConverter(table),
		Rotation:  rotation.NewConverter(cache),
		Lunar:     lunar.NewModel(),
		Stellar:   stellar.NewEstimator(catalog),
	})

	ctx := context.Background()
	fmt.Printf("%s\n\n", instant.Format(time.RFC3339Nano))
	for _, m := range registry.All() {
		id := m.Metadata().ID
		name := labels.Label(id, "name", *locale)

		res, err := m.Compute(ctx, instant, nil)
		if err != nil {
			fmt.Printf("%-18s %-28s error: %v\n", id, name, err)
			continue
		}
		fmt.Printf("%-18s %-28s %s\n", id, name, res.Display)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
