// Package monitor runs the analysis pipeline on a schedule and persists
// a plain-text snapshot per tick.
package monitor

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"optionscan/internal/analyzer"
	"optionscan/internal/export"
	"optionscan/internal/models"
	"optionscan/internal/pipeline"
)

type Service struct {
	Collector *pipeline.Collector
	Logger    *zap.Logger
	Holder    *Holder

	NearMoneyPct  float64
	Top           int
	MonitoringDir string
}

// Analyze runs one full pipeline pass: fetch, merge, classify, rank.
func (s *Service) Analyze(ctx context.Context) models.ResultTable {
	records := s.Collector.Collect(ctx)
	table := analyzer.Rank(records, s.NearMoneyPct)
	s.Logger.Info("analysis complete",
		zap.Int("merged", len(records)),
		zap.Int("ranked", len(table)),
	)
	return table
}

// Tick is one monitoring iteration: analyze, publish the result to the
// holder, write the snapshot file and print the console summary. A
// snapshot write failure is logged and does not affect later ticks.
func (s *Service) Tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	now := time.Now()
	table := s.Analyze(ctx)
	s.Holder.Set(table, now)

	if len(table) == 0 {
		s.Logger.Info("no discounted options this tick")
		return
	}
	path, err := export.WriteSnapshot(s.MonitoringDir, table, s.Top, now)
	if err != nil {
		s.Logger.Warn("snapshot write failed", zap.Error(err))
	} else {
		s.Logger.Info("snapshot saved", zap.String("path", path))
	}
	export.PrintTop(os.Stdout, table, s.Top)
}
