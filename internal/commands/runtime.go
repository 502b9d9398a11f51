package commands

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/banking"
	"github.com/tellerkit/teller/internal/config"
	"github.com/tellerkit/teller/internal/id"
	"github.com/tellerkit/teller/internal/ledger"
	"github.com/tellerkit/teller/internal/logging"
)

// runtime holds the services one command invocation works with.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *ledger.Store
	accounts *banking.Service
}

// newRuntime loads config, opens the ledger and builds the account service.
// A ledger that cannot be read is reported and treated as empty.
func newRuntime(cmd *cobra.Command, opts *globalOptions) (*runtime, error) {
	load := config.LoadOrDefault
	if cmd.Flags().Changed("config") {
		// An explicit --config must exist.
		load = config.Load
	}
	cfg, err := load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger := logging.New(cmd.ErrOrStderr(), level, cfg.Log.Format).
		With("run_id", uuid.NewString(), "command", cmd.Name())

	path := cfg.Store.Path
	if opts.dbPath != "" {
		path = opts.dbPath
	}

	store := ledger.NewStore(path, logger)
	if _, err := store.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; continuing with an empty ledger\n", err)
	}

	limits := banking.Limits{
		MaxDeposit:    cfg.Limits.MaxDeposit,
		MaxWithdrawal: cfg.Limits.MaxWithdrawal,
	}

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		accounts: banking.NewService(store, id.NewGenerator(), limits, logger),
	}, nil
}
