package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/weatherbot/config"
	"github.com/alejandrodnm/weatherbot/internal/adapters/notify"
	"github.com/alejandrodnm/weatherbot/internal/adapters/polymarket"
	"github.com/alejandrodnm/weatherbot/internal/adapters/state"
	"github.com/alejandrodnm/weatherbot/internal/adapters/storage"
	"github.com/alejandrodnm/weatherbot/internal/adapters/tradelog"
	"github.com/alejandrodnm/weatherbot/internal/engine"
	"github.com/alejandrodnm/weatherbot/internal/ports"
	"github.com/alejandrodnm/weatherbot/internal/scanner"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one cycle and exit")
	live := flag.Bool("live", false, "trade with real money (overrides config)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *live {
		cfg.Trading.Live = true
		if cfg.PrivateKey == "" {
			slog.Error("live mode requires POLYMARKET_PRIVATE_KEY")
			os.Exit(1)
		}
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("weatherbot starting",
		"config", *configPath,
		"interval", cfg.ScanInterval(),
		"live", cfg.Trading.Live,
		"once", *once,
	)

	client := polymarket.NewClient(cfg.API.CLOBBase, cfg.API.GammaBase, cfg.API.DataBase)

	store, err := state.NewStore(cfg.Storage.StateFile, cfg.Risk.StartingBankroll)
	if err != nil {
		slog.Error("failed to open state file", "err", err, "path", cfg.Storage.StateFile)
		os.Exit(1)
	}

	tradeLog, err := tradelog.New(cfg.Storage.TradeLog)
	if err != nil {
		slog.Error("failed to open trade log", "err", err, "path", cfg.Storage.TradeLog)
		os.Exit(1)
	}

	history, err := storage.NewSQLiteHistory(cfg.Storage.HistoryDSN)
	if err != nil {
		slog.Error("failed to open history database", "err", err, "dsn", cfg.Storage.HistoryDSN)
		os.Exit(1)
	}
	defer history.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	notifier := notify.NewConsole()
	notifier.Banner(!cfg.Trading.Live, cfg.Risk.StartingBankroll, cfg.Trading.BetSizeUSDC, cfg.Risk.KillSwitchMin)

	var (
		executor ports.OrderExecutor
		wallet   string
	)
	if cfg.Trading.Live {
		executor, wallet = setupLive(ctx, client, cfg)
	} else {
		executor = engine.NewPaperExecutor()
	}

	log := slog.Default()
	sc := scanner.New(client, log)
	leaders := scanner.NewLeaderResolver(client, client, cfg.Scanner.TopTraders, log)
	exec := engine.NewExecutor(client, executor, store, tradeLog, notifier, engine.ExecutorConfig{
		BetSizeUSDC: cfg.Trading.BetSizeUSDC,
		MinAsk:      cfg.Trading.MinAsk,
		MaxAsk:      cfg.Trading.MaxAsk,
		MaxSpread:   cfg.Trading.MaxSpread,
		Paper:       !cfg.Trading.Live,
	}, log)
	resolver := engine.NewResolver(client, client, client, store, tradeLog, notifier, wallet, cfg.StaleWindow(), log)

	bot := engine.NewBot(sc, leaders, exec, resolver, store, history, notifier, cfg, log)
	if err := bot.Run(ctx, *once); err != nil {
		slog.Error("bot exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("weatherbot stopped cleanly")
}

// setupLive autentica contra el CLOB, verifica el balance de la wallet y da
// una ventana de 5 segundos para abortar antes de gastar dinero real.
func setupLive(ctx context.Context, client *polymarket.Client, cfg *config.Config) (ports.OrderExecutor, string) {
	slog.Info("=== LIVE TRADING MODE (REAL MONEY) ===",
		"bet_size", cfg.Trading.BetSizeUSDC,
		"kill_switch", cfg.Risk.KillSwitchMin,
	)
	slog.Warn("press Ctrl+C within 5 seconds to abort...")

	select {
	case <-time.After(5 * time.Second):
	case <-ctx.Done():
		slog.Info("live trading aborted by user")
		os.Exit(0)
	}

	authClient, err := polymarket.NewAuthClient(client, cfg.PrivateKey)
	if err != nil {
		slog.Error("failed to create auth client", "err", err)
		os.Exit(1)
	}

	if err := authClient.EnsureCreds(ctx); err != nil {
		slog.Error("failed to derive API credentials — check POLYMARKET_PRIVATE_KEY", "err", err)
		os.Exit(1)
	}
	slog.Info("live: authenticated with Polymarket CLOB", "address", authClient.Address())

	tradingClient, err := polymarket.NewTradingClient(authClient, cfg.RPCURL)
	if err != nil {
		slog.Error("failed to create trading client", "err", err)
		os.Exit(1)
	}

	balance, err := tradingClient.GetBalance(ctx)
	if err != nil {
		slog.Error("failed to get USDC balance", "err", err)
		os.Exit(1)
	}
	slog.Info("live: wallet balance", "usdc", fmt.Sprintf("$%.2f", balance))

	if balance < cfg.Trading.BetSizeUSDC {
		slog.Error("insufficient USDC balance",
			"balance", fmt.Sprintf("$%.2f", balance),
			"required", fmt.Sprintf("$%.2f", cfg.Trading.BetSizeUSDC))
		os.Exit(1)
	}

	wallet := cfg.Wallet
	if wallet == "" {
		wallet = authClient.Address()
	}

	return tradingClient, wallet
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
