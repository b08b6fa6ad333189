// plannerctl is the operator sidekick for the planner service: one-time
// legacy data import and schedule previews, straight against the store.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/epicplan/planner/internal/application/planner"
	"github.com/epicplan/planner/internal/calendar"
	"github.com/epicplan/planner/internal/infrastructure/persistence/postgres"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

func main() {
	app := &cli.App{
		Name:    "plannerctl",
		Usage:   "Operations tool for the content planner",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "PostgreSQL connection string",
				EnvVars: []string{"PLANNER_DB_DSN"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "import-legacy",
				Usage:     "Import an exported local-storage blob (runs once)",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "Run schema migrations before importing",
						Value: true,
					},
				},
				Action: importLegacy,
			},
			{
				Name:  "newsletters",
				Usage: "Preview upcoming newsletter issues",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "days",
						Aliases: []string{"n"},
						Value:   28,
						Usage:   "How many days ahead to preview",
					},
				},
				Action: upcomingNewsletters,
			},
			{
				Name:      "week",
				Usage:     "Show the week id and window containing a date",
				ArgsUsage: "[YYYY-MM-DD]",
				Action:    showWeek,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneralError)
	}
}

func importLegacy(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one file argument")
	}
	dsn := c.String("dsn")
	if dsn == "" {
		return fmt.Errorf("a database connection is required, set --dsn or PLANNER_DB_DSN")
	}

	file, err := os.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	store, err := postgres.NewStoreWithConfig(c.Context, postgres.DBConfig{
		DSN:         dsn,
		AutoMigrate: c.Bool("migrate"),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer store.Close()

	svc := planner.NewService(store, planner.Config{})
	result, err := svc.ImportLegacy(c.Context, file)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d items\n", result.Migrated)
	if len(result.Errors) > 0 {
		fmt.Printf("%d items failed:\n", len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Printf("  - %s\n", msg)
		}
	}
	return nil
}

func upcomingNewsletters(c *cli.Context) error {
	days := c.Int("days")
	if days < 1 {
		return fmt.Errorf("days must be positive")
	}

	from := calendar.DateOf(time.Now().UTC())
	to := from.AddDate(0, 0, days)

	due := calendar.UpcomingNewsletters(from, to)
	if len(due) == 0 {
		fmt.Println("No newsletters due in this window")
		return nil
	}

	for _, issue := range due {
		fmt.Printf("%s  %s\n", calendar.FormatDate(issue.Date), issue.Type)
	}
	return nil
}

func showWeek(c *cli.Context) error {
	date := time.Now().UTC()
	if c.NArg() > 0 {
		parsed, err := calendar.ParseDate(c.Args().First())
		if err != nil {
			return fmt.Errorf("invalid date, expected YYYY-MM-DD: %w", err)
		}
		date = parsed
	}

	week := calendar.WeekContaining(date, calendar.DefaultWeekStart)
	fmt.Printf("%s  %s .. %s\n", week.ID(), calendar.FormatDate(week.Start), calendar.FormatDate(week.End))
	return nil
}
