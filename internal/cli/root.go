// Package cli exposes the catalog operations as a scripting surface and
// launches the interactive TUI.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/qnl/chipsmith/internal/config"
	"github.com/qnl/chipsmith/internal/database"
	"github.com/qnl/chipsmith/internal/database/repository"
	"github.com/qnl/chipsmith/internal/design"
	"github.com/qnl/chipsmith/internal/service"
	"github.com/qnl/chipsmith/internal/tui"
)

var (
	flagDesign string
	flagDB     string
)

var rootCmd = &cobra.Command{
	Use:   "chipsmith",
	Short: "Quantum-chip component catalog",
	Long: `chipsmith builds chip layouts out of parameterized design components.

Run without arguments to open the interactive catalog; subcommands mirror
the same operations for scripting.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			app := tui.New(ctx, env.cfg, tui.Services{
				Designs:     env.designs,
				Maintenance: &service.MaintenanceService{DB: env.db},
			}, d)
			p := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return env.designs.Save(ctx, d)
		})
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDesign, "design", "d", "scratch", "design to open")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "sqlite path (default from config)")
}

// env bundles the opened database and services for one command run.
type env struct {
	cfg     config.Config
	db      *sql.DB
	designs *service.DesignService
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if flagDB != "" {
		cfg.Database.Path = flagDB
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &env{
		cfg:     cfg,
		db:      db,
		designs: &service.DesignService{Designs: repository.NewDesignRepo(db)},
	}, nil
}

// withEnv opens config + database around fn.
func withEnv(ctx context.Context, fn func(context.Context, *env) error) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.db.Close()
	return fn(ctx, env)
}

// withDesign additionally opens the --design catalog and saves it back when
// fn succeeds.
func withDesign(ctx context.Context, fn func(context.Context, *env, *design.Design) error) error {
	return withEnv(ctx, func(ctx context.Context, env *env) error {
		d, err := env.designs.Open(ctx, flagDesign)
		if err != nil {
			return err
		}
		if err := fn(ctx, env, d); err != nil {
			return err
		}
		return env.designs.Save(ctx, d)
	})
}

// parsePairs turns k=v arguments into an override map.
func parsePairs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}

// resolve finds a component by decimal ID first, then by name.
func resolve(d *design.Design, ref string) (*design.Component, error) {
	var id int
	if _, err := fmt.Sscanf(ref, "%d", &id); err == nil && fmt.Sprintf("%d", id) == ref {
		return d.ByID(id)
	}
	return d.ByName(ref)
}
