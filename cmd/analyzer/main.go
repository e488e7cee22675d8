package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"optionscan/internal/config"
	cronrunner "optionscan/internal/cron"
	"optionscan/internal/export"
	"optionscan/internal/handler"
	"optionscan/internal/logger"
	"optionscan/internal/moex"
	"optionscan/internal/monitor"
	"optionscan/internal/pipeline"
)

func main() {
	tableMode := flag.Bool("table", false, "run the pipeline once and export the ranked table to a spreadsheet")
	monitorMode := flag.Bool("monitor", false, "poll on a fixed interval and write a snapshot per tick")
	flag.Parse()
	if !*tableMode && !*monitorMode {
		flag.Usage()
		return
	}

	cfgPath := os.Getenv("OPTSCAN_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	envOnly := false
	if envOnlyRaw := os.Getenv("OPTSCAN_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cutoff, err := cfg.Pipeline.Cutoff()
	if err != nil {
		log.Fatal("bad configuration", zap.Error(err))
	}

	issHTTP := &http.Client{Timeout: cfg.ISS.Timeout}
	issClient := moex.NewClient(issHTTP, cfg.ISS.OptionsBaseURL, cfg.ISS.CandlesBaseURL, cfg.ISS.RequestInterval)
	collector := &pipeline.Collector{
		Market:  issClient,
		Logger:  log,
		Tickers: cfg.Pipeline.Tickers,
		Cutoff:  cutoff,
	}
	holder := &monitor.Holder{}
	svc := &monitor.Service{
		Collector:     collector,
		Logger:        log,
		Holder:        holder,
		NearMoneyPct:  cfg.Pipeline.NearMoneyPct,
		Top:           cfg.Export.Top,
		MonitoringDir: cfg.Export.MonitoringDir,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *tableMode {
		if err := runTable(ctx, cfg, svc, log); err != nil {
			log.Error("table export failed", zap.Error(err))
			os.Exit(1)
		}
	}
	if *monitorMode {
		runMonitor(ctx, cfg, svc, holder, log)
	}
}

func runTable(ctx context.Context, cfg config.Config, svc *monitor.Service, log *zap.Logger) error {
	table := svc.Analyze(ctx)
	if len(table) == 0 {
		log.Info("no discounted options found, nothing to export")
		return nil
	}
	path, err := export.WriteTable(cfg.Export.TablesDir, table, cfg.Export.Top, time.Now())
	if err != nil {
		return err
	}
	log.Info("table saved", zap.String("path", path), zap.Int("rows", len(table)))
	export.PrintTop(os.Stdout, table, cfg.Export.Top)
	return nil
}

func runMonitor(ctx context.Context, cfg config.Config, svc *monitor.Service, holder *monitor.Holder, log *zap.Logger) {
	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	statusHandler := &handler.StatusHandler{
		Source:  holder,
		Tickers: len(cfg.Pipeline.Tickers),
		Top:     cfg.Export.Top,
	}
	statusHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("status server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("monitoring started", zap.Duration("interval", cfg.Monitor.Interval))

	// First tick runs inline so the status API has data before the
	// schedule kicks in.
	svc.Tick(ctx)

	runner := cronrunner.New(log, ctx)
	if _, err := runner.Add("@every "+cfg.Monitor.Interval.String(), svc.Tick); err != nil {
		log.Error("cron register monitoring tick failed", zap.Error(err))
		os.Exit(1)
	}
	runner.Start()
	defer runner.Stop()

	select {
	case <-ctx.Done():
		log.Info("monitoring stopped by operator")
	case err := <-errCh:
		log.Error("status server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
