package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/examples/strategy"
	"github.com/peter-kozarec/replay/internal/dbg"
	"github.com/peter-kozarec/replay/pkg/data/duckdb"
	"github.com/peter-kozarec/replay/pkg/data/synthetic"
	"github.com/peter-kozarec/replay/pkg/engine"
	"github.com/peter-kozarec/replay/pkg/exchange/sandbox"
	"github.com/peter-kozarec/replay/pkg/middleware"
	"github.com/peter-kozarec/replay/pkg/tools/metrics"
)

func main() {
	logger := dbg.NewLogger(Development, LogLevel)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	adapter := synthetic.NewAdapter(DataConfig)

	maCross := strategy.NewMaCross(FastWindow, SlowWindow, Exposure)
	simulator := sandbox.NewSimulator(Instrument,
		sandbox.WithLogger(logger),
		sandbox.WithSlippageModel(sandbox.SpreadSlippage{Fraction: SlippageSpreadFraction}),
		sandbox.WithOrderLatency(OrderLatency),
		sandbox.WithCancelLatency(CancelLatency),
	)

	monitor := middleware.NewMonitor(logger, MonitorEvents)
	telemetry := middleware.NewTelemetry(logger)
	performance := middleware.NewPerformance(logger)

	strat := middleware.Chain(
		telemetry.WithStrategy,
		monitor.WithStrategy,
		performance.WithStrategy,
	)(engine.Strategy(maCross))

	exec := middleware.Chain(
		telemetry.WithExecution,
		monitor.WithExecution,
		performance.WithExecution,
	)(engine.Execution(simulator))

	eng := engine.NewEngine(logger)
	eng.Configure(adapter, strat, exec)

	res, err := eng.Run(ctx, Parameters)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("run cancelled")
			return
		}
		logger.Fatal("run failed", zap.Error(err))
	}

	telemetry.PrintStatistics()
	performance.PrintStatistics()

	audit := metrics.NewAudit()
	audit.Consume(res)
	audit.GenerateReport().Log(logger)

	if ResultDatabase != "" {
		storeResult(logger, res)
	}
}

func storeResult(logger *zap.Logger, res engine.Result) {
	writer, err := duckdb.NewWriter(ResultDatabase)
	if err != nil {
		logger.Error("unable to open result database", zap.Error(err))
		return
	}
	defer writer.Close()

	runId := uuid.NewString()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := writer.StoreResult(ctx, runId, res); err != nil {
		logger.Error("unable to store run result", zap.Error(err))
		return
	}

	logger.Info("run result stored",
		zap.String("run_id", runId),
		zap.String("database", ResultDatabase))
}
