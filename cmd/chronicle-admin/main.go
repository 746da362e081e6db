// Package main is the entry point for the Chronicle admin CLI.
// It inspects an embedded database file directly, without going through the
// HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/config"
	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/repository"
	"github.com/prn-tf/chronicle/internal/repository/sqlite"
	"github.com/prn-tf/chronicle/internal/stats"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	dbPath := flag.String("db", "./data/chronicle.db", "path to the SQLite database file")
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	switch command := flag.Arg(0); command {
	case "version":
		fmt.Printf("Chronicle Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "stats":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "usage: chronicle-admin stats <user-id>")
			os.Exit(1)
		}
		if err := runStats(*dbPath, flag.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

	case "entries":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "usage: chronicle-admin entries <user-id>")
			os.Exit(1)
		}
		if err := runEntries(*dbPath, flag.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runStats(dbPath, rawUserID string) error {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", rawUserID, err)
	}

	ctx := context.Background()
	repo, closeDB, err := openRepo(ctx, dbPath)
	if err != nil {
		return err
	}
	defer closeDB()

	entries, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	s := stats.Compute(entries, time.Now())

	fmt.Printf("Total entries:       %d\n", s.TotalEntries)
	fmt.Printf("Total words:         %d\n", s.TotalWords)
	fmt.Printf("Total media:         %d\n", s.TotalMediaUploaded)
	fmt.Printf("Current streak:      %d\n", s.CurrentStreak)
	fmt.Printf("Most frequent word:  %s\n", s.MostFrequentWord)
	fmt.Printf("Favorites:           %d\n", len(s.FavoriteEntries))
	fmt.Printf("Activity (28 days):  %s\n", renderCalendar(s.ActivityCalendar))
	fmt.Printf("Retroactive:         %s\n", renderCalendar(s.RetroactiveActivity))
	return nil
}

func runEntries(dbPath, rawUserID string) error {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", rawUserID, err)
	}

	ctx := context.Background()
	repo, closeDB, err := openRepo(ctx, dbPath)
	if err != nil {
		return err
	}
	defer closeDB()

	entries, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, e := range entries {
		flags := make([]string, 0, 3)
		if e.IsLocked {
			flags = append(flags, "locked")
		}
		if e.IsFavorite {
			flags = append(flags, "favorite")
		}
		if e.IsRetroactive {
			flags = append(flags, "retroactive")
		}
		fmt.Printf("%s  %s  %-30q  [%s]\n",
			e.ID, domain.DayKey(e.Date), e.Title, strings.Join(flags, ","))
	}

	// Footer reports the database count, which catches drift if listing
	// ever paginates or filters.
	count, err := repo.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Printf("%d entries\n", count)
	return nil
}

func openRepo(ctx context.Context, dbPath string) (repository.EntryRepository, func() error, error) {
	db, err := sqlite.NewDB(ctx, config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            dbPath,
		JournalMode:     "WAL",
		BusyTimeout:     5000,
		SynchronousMode: "NORMAL",
	}, zerolog.Nop())
	if err != nil {
		return nil, nil, err
	}

	return sqlite.NewEntryRepository(db), db.Close, nil
}

// renderCalendar prints the activity window as one glyph per day, today
// leftmost.
func renderCalendar(days [domain.ActivityWindow]bool) string {
	var b strings.Builder
	for _, active := range days {
		if active {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func printUsage() {
	fmt.Println(`Chronicle Admin CLI

Usage:
  chronicle-admin [-db path] <command> [arguments]

Commands:
  stats       Print derived statistics for a user
  entries     List a user's entries
  version     Print version information
  help        Show this help message

Examples:
  chronicle-admin stats 6a1f0f3e-8f0a-4d3e-9a4b-1c2d3e4f5a6b
  chronicle-admin -db ./data/chronicle.db entries <user-id>`)
}
