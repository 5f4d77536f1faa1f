package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/HCTop/LoteriaProbabilidad/config"
	"github.com/HCTop/LoteriaProbabilidad/internal/adapters/history"
	"github.com/HCTop/LoteriaProbabilidad/internal/adapters/ingest"
	"github.com/HCTop/LoteriaProbabilidad/internal/adapters/notify"
	"github.com/HCTop/LoteriaProbabilidad/internal/backtest"
	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
	"github.com/HCTop/LoteriaProbabilidad/internal/ports"
	"github.com/HCTop/LoteriaProbabilidad/internal/prize"
	"github.com/HCTop/LoteriaProbabilidad/internal/selector"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	gameKey := flag.String("game", "", "game key: primitiva|bonoloto|euromillones|elgordo (overrides config)")
	method := flag.String("metodo", "", "run a single method by name (default: all)")
	evals := flag.Int("n", 0, "draws to evaluate (overrides config)")
	reps := flag.Int("reps", 0, "repetitions per step, best kept (overrides config)")
	seed := flag.Int64("seed", 0, "base seed for stochastic methods (overrides config)")
	workers := flag.Int("workers", 0, "parallel workers, <=1 sequential (overrides config)")
	csvPath := flag.String("csv", "", "load history from this CSV instead of the archive")
	premios := flag.Bool("premios", false, "simulate ticket strategies with real payouts")
	doIngest := flag.Bool("ingest", false, "download draw history and update the archive")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Sin fichero de config se arranca con los valores de referencia.
		if !errors.Is(err, os.ErrNotExist) {
			slog.Error("failed to load config", "err", err, "path", *configPath)
			os.Exit(1)
		}
		cfg = config.Default()
	}

	if *gameKey != "" {
		cfg.Game = *gameKey
	}
	if *evals > 0 {
		cfg.Backtest.Evaluations = *evals
	}
	if *reps > 0 {
		cfg.Backtest.Reps = *reps
	}
	if *seed != 0 {
		cfg.Backtest.Seed = *seed
	}
	if *workers > 0 {
		cfg.Backtest.Workers = *workers
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	game, err := domain.GameByKey(cfg.Game)
	if err != nil {
		slog.Error("unknown game", "err", err)
		os.Exit(1)
	}

	slog.Info("loteria starting",
		"game", game.Key,
		"evaluations", cfg.Backtest.Evaluations,
		"reps", cfg.Backtest.Reps,
		"workers", cfg.Backtest.Workers,
		"seed", cfg.Backtest.Seed,
	)

	archive, err := history.NewSQLiteArchive(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open archive", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer archive.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reporter := notify.NewConsole()

	if *doIngest {
		runIngest(ctx, cfg, game, archive, reporter)
		return
	}

	h, err := loadHistory(ctx, cfg, game, archive, *csvPath)
	if err != nil {
		slog.Error("failed to load history", "err", err)
		os.Exit(1)
	}
	if len(h) == 0 {
		slog.Error("empty history — run with -ingest first")
		os.Exit(1)
	}
	slog.Info("history loaded", "draws", len(h),
		"from", h[0].Date.Format("2006-01-02"),
		"to", h[len(h)-1].Date.Format("2006-01-02"))

	if *premios {
		runPremios(ctx, cfg, game, h, reporter)
		return
	}

	runBacktest(ctx, cfg, game, h, *method, archive, reporter)
}

// loadHistory carga el histórico: del CSV explícito si se pasó -csv, del
// archivo SQLite si tiene sorteos, y del CSV del directorio de datos en
// último término.
func loadHistory(ctx context.Context, cfg *config.Config, game domain.Game, archive ports.Archive, csvPath string) (domain.History, error) {
	var src ports.HistorySource
	if csvPath != "" {
		src = history.NewCSVSource(csvPath)
	} else {
		h, err := archive.LoadHistory(ctx, game)
		if err != nil {
			// El fallback a CSV no puede tapar un archivo corrupto.
			slog.Warn("archive read failed, falling back to csv", "err", err)
		}
		if err == nil && len(h) > 0 {
			return h, nil
		}
		src = history.NewCSVSource(filepath.Join(cfg.History.Dir, game.Key+".csv"))
	}
	return src.LoadHistory(ctx, game)
}

// runBacktest evalúa los métodos y persiste el resumen de cada run.
func runBacktest(ctx context.Context, cfg *config.Config, game domain.Game, h domain.History, method string, archive ports.Archive, reporter *notify.Console) {
	registry, err := selector.NewRegistry(game, cfg.SelectorParams())
	if err != nil {
		slog.Error("bad method params", "err", err)
		os.Exit(1)
	}

	selectors := registry.All()
	if method != "" {
		sel, ok := registry.Get(method)
		if !ok {
			slog.Error("unknown method", "metodo", method, "available", registry.Names())
			os.Exit(1)
		}
		selectors = []selector.Selector{sel}
	}

	results, err := backtest.RunAll(ctx, cfg.BacktestParams(), game, h, selectors)
	if err != nil {
		slog.Error("backtest failed", "err", err)
		os.Exit(1)
	}

	reporter.PrintBacktest(game, results)

	for _, r := range results {
		run := domain.RunSummary{
			ID:          uuid.NewString(),
			Game:        game.Key,
			Method:      r.Method,
			RanAt:       time.Now().UTC(),
			Evaluations: r.Evaluated,
			MeanHits:    r.MeanHits,
			PctAtLeast3: r.PctAtLeast3,
			PctAtLeast4: r.PctAtLeast4,
			Baseline:    r.Baseline,
		}
		if err := archive.SaveRun(ctx, run); err != nil {
			slog.Warn("failed to save run", "method", r.Method, "err", err)
		}
	}
	slog.Info("backtest complete", "methods", len(results))
}

// runPremios simula las estrategias de cobertura con la tabla de premios.
func runPremios(ctx context.Context, cfg *config.Config, game domain.Game, h domain.History, reporter *notify.Console) {
	params := cfg.SelectorParams()
	blend := selector.NewMixto(game, params.Blend, params.HotWindow, params.MinHistory,
		selector.NewAleatorio(game, params.Seed))

	sim := prize.NewSimulator(game, cfg.PayoutTable())
	strategies := prize.DefaultStrategies(game, cfg.PrizeParams(), blend)

	results, err := sim.RunAll(ctx, h, strategies, cfg.Backtest.Evaluations)
	if err != nil {
		slog.Error("prize simulation failed", "err", err)
		os.Exit(1)
	}

	reporter.PrintPrize(game, results)
	slog.Info("prize simulation complete", "strategies", len(results))
}

// runIngest descarga las hojas públicas, actualiza el archivo y deja el
// CSV del juego al día.
func runIngest(ctx context.Context, cfg *config.Config, game domain.Game, archive ports.Archive, reporter *notify.Console) {
	ing := ingest.NewIngester(ingest.NewClient(), cfg.Ingest.URLs, slog.Default())

	h, err := ing.FetchGame(ctx, game)
	if err != nil {
		slog.Error("ingest failed", "err", err)
		os.Exit(1)
	}

	added, err := archive.SaveDraws(ctx, game, h)
	if err != nil {
		slog.Error("failed to save draws", "err", err)
		os.Exit(1)
	}

	path := filepath.Join(cfg.History.Dir, game.Key+".csv")
	if err := os.MkdirAll(cfg.History.Dir, 0o755); err != nil {
		slog.Error("failed to create data dir", "err", err)
		os.Exit(1)
	}
	if err := history.WriteCSV(path, game, h); err != nil {
		slog.Error("failed to write csv", "err", err, "path", path)
		os.Exit(1)
	}

	reporter.PrintIngest(game, len(h), added)
	slog.Info("ingest complete", "game", game.Key, "draws", len(h), "new", added)
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
