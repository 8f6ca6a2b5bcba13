package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/tripplanner/migrations"
)

var databaseURL string

var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Apply, roll back or inspect database migrations",
	GroupID: "database",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, closeDB, err := openProvider()
		if err != nil {
			return err
		}
		defer closeDB()

		results, err := p.Up(cmd.Context())
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, migrationResults(results...))
		}
		if len(results) == 0 {
			printSuccess(out, "Database is up to date")
			return nil
		}
		for _, r := range results {
			printSuccess(out, fmt.Sprintf("Applied %s (%s)", r.Source.Path, r.Duration))
		}
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, closeDB, err := openProvider()
		if err != nil {
			return err
		}
		defer closeDB()

		result, err := p.Down(cmd.Context())
		if errors.Is(err, goose.ErrNoNextVersion) {
			printWarning(cmd.OutOrStdout(), "No migrations to roll back")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, migrationResults(result))
		}
		printSuccess(out, fmt.Sprintf("Rolled back %s (%s)", result.Source.Path, result.Duration))
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations are applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, closeDB, err := openProvider()
		if err != nil {
			return err
		}
		defer closeDB()

		statuses, err := p.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, statusRows(statuses))
		}
		printSection(out, "Migrations")
		rows := make([][]string, 0, len(statuses))
		for _, s := range statusRows(statuses) {
			rows = append(rows, []string{strconv.FormatInt(s.Version, 10), s.Path, s.State, s.AppliedAt})
		}
		printTable(out, []string{"Version", "File", "State", "Applied"}, rows)
		return nil
	},
}

type migrationResult struct {
	Version  int64  `json:"version"`
	Path     string `json:"path"`
	Duration string `json:"duration"`
}

func migrationResults(results ...*goose.MigrationResult) []migrationResult {
	out := make([]migrationResult, 0, len(results))
	for _, r := range results {
		if r == nil || r.Source == nil {
			continue
		}
		out = append(out, migrationResult{
			Version:  r.Source.Version,
			Path:     r.Source.Path,
			Duration: r.Duration.String(),
		})
	}
	return out
}

type migrationStatus struct {
	Version   int64  `json:"version"`
	Path      string `json:"path"`
	State     string `json:"state"`
	AppliedAt string `json:"applied_at,omitempty"`
}

func statusRows(statuses []*goose.MigrationStatus) []migrationStatus {
	out := make([]migrationStatus, 0, len(statuses))
	for _, s := range statuses {
		row := migrationStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			State:   string(s.State),
		}
		if !s.AppliedAt.IsZero() {
			row.AppliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		out = append(out, row)
	}
	return out
}

// openProvider opens the database named by --database-url (or DATABASE_URL)
// and returns a goose provider over the embedded migrations.
func openProvider() (*goose.Provider, func(), error) {
	dsn := databaseURL
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return nil, nil, errors.New("no database: set DATABASE_URL or pass --database-url")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	p, err := migrations.NewProvider(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return p, func() { _ = db.Close() }, nil
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres connection string (default DATABASE_URL)")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}
