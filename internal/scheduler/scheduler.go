// Package scheduler runs the periodic inventory report: a structured log
// line summarizing low-stock, backordered, and pending-delivery state so
// operators see drift without opening the dashboard.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/salestracker/salestracker-server/internal/dashboard"
)

type Scheduler struct {
	cron      *cron.Cron
	dash      dashboard.UseCase
	schedule  string
	threshold int
	logger    *zap.Logger
}

func NewScheduler(dash dashboard.UseCase, schedule string, lowStockThreshold int, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(),
		dash:      dash,
		schedule:  schedule,
		threshold: lowStockThreshold,
		logger:    logger,
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runInventoryReport); err != nil {
		s.logger.Error("failed to schedule inventory report", zap.Error(err))
		return
	}
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runInventoryReport() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	summary, err := s.dash.InventorySummary(ctx, s.threshold)
	if err != nil {
		s.logger.Error("inventory report failed", zap.Error(err))
		return
	}
	pending, err := s.dash.PendingDeliveriesCount(ctx)
	if err != nil {
		s.logger.Error("inventory report failed", zap.Error(err))
		return
	}
	backordered, err := s.dash.BackorderedItems(ctx)
	if err != nil {
		s.logger.Error("inventory report failed", zap.Error(err))
		return
	}

	s.logger.Info("inventory report",
		zap.Int("total_items", summary.TotalItems),
		zap.Int("low_stock", summary.LowStockCount),
		zap.Int("backordered", summary.BackorderedCount),
		zap.Int("pending_deliveries", pending))

	for _, b := range backordered {
		s.logger.Warn("item backordered",
			zap.Int64("item_id", b.Item.ID),
			zap.String("name", b.Item.Name),
			zap.Int("qty_needed", b.QtyNeeded))
	}
}
