package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/app"
	"github.com/abhisek/quizzer/internal/bank"
	"github.com/abhisek/quizzer/internal/history"
	"github.com/abhisek/quizzer/internal/logger"
	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/store"
)

// deps is everything a command needs to run quizzes.
type deps struct {
	log     *logger.Logger
	store   *store.Store
	bank    *bank.Bank
	history *history.Store
	engine  *quiz.Engine
}

func (d *deps) Close() {
	if d.store != nil {
		d.store.Close()
	}
	d.log.Sync()
}

// openDeps resolves configuration, opens the store, loads the bank and
// history, and builds the quiz engine.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogPath())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	b, err := bank.Load(cfg.BankPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	log.Info("starting",
		"db", cfg.DBPath,
		"bank_version", b.Version(),
		"subjects", b.Len(),
	)

	hist := history.Open(cmd.Context(), st.DocumentRepo(), log)
	return &deps{
		log:     log,
		store:   st,
		bank:    b,
		history: hist,
		engine:  quiz.NewEngine(b, hist, quiz.WithLogger(log)),
	}, nil
}

// runApp opens dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(d.engine, d.log)
}
