// Command digest assembles and prints a user's digest. It is meant for
// scheduled delivery pipelines and ad hoc inspection.
//
// Usage:
//
//	digest --workspace=W123 --user=U456 [--kind=morning|end_of_day|away] [--since=72h]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/mkossowski/agendum/internal/adapter/postgres"
	decisionrepo "github.com/mkossowski/agendum/internal/adapter/postgres/decision"
	"github.com/mkossowski/agendum/internal/adapter/postgres/item"
	workspacerepo "github.com/mkossowski/agendum/internal/adapter/postgres/workspace"
	"github.com/mkossowski/agendum/internal/app"
	"github.com/mkossowski/agendum/internal/config"
	"github.com/mkossowski/agendum/internal/service/digest"
)

func main() {
	workspaceID := flag.String("workspace", "", "workspace id")
	userID := flag.String("user", "", "user id")
	kind := flag.String("kind", "morning", "digest kind: morning, end_of_day, or away")
	since := flag.Duration("since", 72*time.Hour, "lookback window for the away digest")
	flag.Parse()

	if *workspaceID == "" || *userID == "" {
		fmt.Fprintln(os.Stderr, "Usage: digest --workspace=W123 --user=U456 [--kind=morning] [--since=72h]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := digest.NewService(
		logger,
		item.New(pool),
		decisionrepo.New(pool),
		workspacerepo.New(pool),
		cfg.Engine.DigestItemLimit,
	)

	var d digest.Digest
	switch *kind {
	case "morning":
		d, err = svc.Morning(ctx, *workspaceID, *userID)
	case "end_of_day", "eod":
		d, err = svc.EndOfDay(ctx, *workspaceID, *userID)
	case "away", "while_you_were_away":
		d, err = svc.CatchUp(ctx, *workspaceID, *userID, time.Now().UTC().Add(-*since))
	default:
		fmt.Fprintf(os.Stderr, "unknown digest kind %q\n", *kind)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("assemble digest", slog.String("error", err.Error()))
		os.Exit(1)
	}

	render(d)
}

func render(d digest.Digest) {
	fmt.Printf("%s digest for %s (generated %s)\n", d.Kind, d.UserID, d.GeneratedAt.Format(time.RFC3339))

	if d.IsEmpty() {
		fmt.Println("\nNothing to report.")
		return
	}

	for _, sec := range d.Sections {
		if len(sec.Items) == 0 {
			continue
		}
		fmt.Printf("\n%s:\n", sec.Name)
		for _, it := range sec.Items {
			line := fmt.Sprintf("  - [%s] %s", it.Type, it.Title)
			if it.DueDate != nil {
				line += " (due " + it.DueDate.Format("2006-01-02 15:04") + ")"
			}
			fmt.Println(line)
		}
	}

	if len(d.Decisions) > 0 {
		fmt.Println("\nDecisions:")
		for _, dec := range d.Decisions {
			fmt.Printf("  - %s\n", dec.DecisionText)
		}
	}
}
