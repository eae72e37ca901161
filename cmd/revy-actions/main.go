package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Simenb123/revy-actions/internal/config"
	"github.com/Simenb123/revy-actions/internal/logging"
	"github.com/Simenb123/revy-actions/internal/model"
	"github.com/Simenb123/revy-actions/internal/storage"
	"github.com/Simenb123/revy-actions/internal/update"
	"github.com/Simenb123/revy-actions/internal/writeback"
)

func main() {
	configPath := flag.String("config", "", "path to config file (yaml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "revy-actions failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	closeLog, err := logging.Setup(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logging.Component("main")

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	store, err := storage.OpenSQLite(cfg.DBPath, logging.Component("storage"))
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		return err
	}

	if cfg.DemoSeed {
		if err := seedDemo(context.Background(), store, cfg.ScopeID); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	engine := writeback.NewEngine(store, logging.Component("writeback"), 8)
	engine.Start()
	defer engine.Stop()

	m := update.NewModel(update.Deps{
		Store:              store,
		Writeback:          engine,
		ScopeID:            cfg.ScopeID,
		EstimatedRowHeight: cfg.List.EstimatedRowHeight,
		Overscan:           cfg.List.Overscan,
		PlainThreshold:     cfg.List.PlainThreshold,
		Log:                logging.Component("update"),
	})

	log.Info().Str("scope", cfg.ScopeID).Str("db", cfg.DBPath).Msg("starting")
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}

// seedDemo inserts a small engagement checklist on an empty scope so the app
// has something to show on first run.
func seedDemo(ctx context.Context, store storage.Store, scopeID string) error {
	existing, err := store.ListActions(ctx, scopeID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	conclusionFields := []model.FieldDef{
		{ID: "conclusion", Label: "Conclusion", Kind: model.FieldLongText, Required: true},
		{ID: "reviewed_by_partner", Label: "Reviewed by partner", Kind: model.FieldBoolean, Required: true},
	}
	samplingFields := []model.FieldDef{
		{ID: "method", Label: "Sampling method", Kind: model.FieldEnum, Required: true, Options: []string{"random", "systematic", "judgmental"}},
		{ID: "assertions", Label: "Assertions covered", Kind: model.FieldMultiEnum, Required: true, Options: []string{"existence", "completeness", "accuracy", "cutoff"}},
		{ID: "notes", Label: "Notes", Kind: model.FieldText, Required: false},
	}

	demo := []model.Action{
		{ID: "act-001", SubjectArea: "sales", Name: "Revenue cutoff testing", Description: "Test invoices around year end for **cutoff**.", Fields: samplingFields},
		{ID: "act-002", SubjectArea: "sales", Name: "Revenue analytical review", Description: "Compare monthly revenue to prior year and budget.", Fields: conclusionFields},
		{ID: "act-003", SubjectArea: "payroll", Name: "Payroll reconciliation", Description: "Reconcile payroll register to the general ledger.", Fields: conclusionFields},
		{ID: "act-004", SubjectArea: "inventory", Name: "Inventory count attendance", Description: "Attend the physical count and trace test counts.", Fields: samplingFields},
		{ID: "act-005", SubjectArea: "finance", Name: "Bank confirmation", Description: "Confirm balances and facilities with the bank.", Fields: conclusionFields},
	}
	for i, a := range demo {
		a.ScopeID = scopeID
		a.SortOrder = i
		a.Status = model.StatusNotStarted
		if err := store.CreateAction(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
