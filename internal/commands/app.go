package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/adapter/bankfeed"
	"github.com/simaogato/finance-dashboard/internal/adapter/market/cbr"
	"github.com/simaogato/finance-dashboard/internal/adapter/notify"
	"github.com/simaogato/finance-dashboard/internal/adapter/repository/filestore"
	"github.com/simaogato/finance-dashboard/internal/adapter/repository/postgres"
	"github.com/simaogato/finance-dashboard/internal/config"
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/logging"
	"github.com/simaogato/finance-dashboard/internal/usecase/market"
	"github.com/simaogato/finance-dashboard/internal/usecase/seeder"
	"github.com/simaogato/finance-dashboard/internal/usecase/session"
)

// app is the wired application shared by the server and the offline commands
type app struct {
	cfg     *config.Config
	logger  *logrus.Logger
	db      *postgres.DB // nil when remote sync is off
	market  *market.MarketService
	manager *session.Manager
}

// newApp wires every component from configuration.
// withRemote connects to Postgres when remote sync is enabled; offline commands only
// need it when acting for a signed-in user.
func newApp(ctx context.Context, opts *globalOptions, logOut io.Writer, withRemote bool) (*app, error) {
	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.dataDir != "" {
		cfg.Storage.DataDir = opts.dataDir
	}
	logger := logging.NewWithOutput(cfg.Log, logOut)

	a := &app{cfg: cfg, logger: logger}

	// 1. Remote record store
	var remote domain.FinanceRecordRepository
	if cfg.Remote.Enabled && withRemote {
		db, err := postgres.NewDB(cfg.Remote.DBConnStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.db = db
		remote = postgres.NewFinanceRecordRepository(db)
	}

	// 2. Market data, cached remotely when possible so every instance starts warm
	var cache domain.MarketSnapshotRepository = filestore.NewMarketCache(cfg.Storage.DataDir)
	if a.db != nil {
		cache = postgres.NewMarketSnapshotRepository(a.db)
	}
	a.market = market.NewMarketService(cbr.NewClient(cfg.Market.CBRBaseURL, logger), cache, logger)
	if err := a.market.LoadCached(ctx); err != nil {
		logger.WithError(err).Warn("Failed to load cached market data")
	}

	// 3. Notifications and bank feed
	var notifier domain.Notifier = notify.Nop{Logger: logger}
	if cfg.Notify.Enabled {
		notifier = notify.NewEmailNotifier(cfg.Notify, logger)
	}
	var transactions domain.TransactionSource
	if cfg.BankFeed.URL != "" {
		transactions = bankfeed.NewClient(cfg.BankFeed.URL, cfg.BankFeed.TransactionsPath, logger)
	}

	// 4. Sessions
	debounce, err := cfg.DebounceDuration()
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	dataDir := cfg.Storage.DataDir
	a.manager = session.NewManager(session.Config{
		Local: func(userID string) domain.LocalStateRepository {
			return filestore.NewStateRepository(filestore.DirFor(dataDir, userID), seeder.DefaultState(), logger)
		},
		Remote:       remote,
		Market:       a.market,
		Notifier:     notifier,
		Transactions: transactions,
		Debounce:     debounce,
		Logger:       logger,
	})

	return a, nil
}

// close flushes pending remote pushes and releases the database
func (a *app) close(ctx context.Context) {
	if a.manager != nil {
		a.manager.Close(ctx)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close database")
		}
	}
}

// withSession runs fn against the session of the selected identity
func withSession(ctx context.Context, opts *globalOptions, logOut io.Writer, fn func(ctx context.Context, a *app, s *session.Session) error) error {
	a, err := newApp(ctx, opts, logOut, opts.user != "")
	if err != nil {
		return err
	}
	defer a.close(ctx)

	s, err := a.manager.Get(ctx, opts.user)
	if err != nil {
		return err
	}
	return fn(ctx, a, s)
}
