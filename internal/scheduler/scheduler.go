package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"AShareSentinel/internal/config"
	"AShareSentinel/internal/engine"
	"AShareSentinel/internal/model"
)

// Scheduler drives the scan and watch loops on their cron schedules.
type Scheduler struct {
	Cron   *cron.Cron
	Engine *engine.Engine
	Ctx    context.Context

	cfg      *config.Config
	loc      *time.Location
	onCycle  func(*engine.CycleReport)
	onAlerts func([]model.Candidate)
}

// NewScheduler creates a scheduler. onCycle and onAlerts receive completed
// scan reports and fresh watch alerts; either may be nil.
func NewScheduler(ctx context.Context, cfg *config.Config, eng *engine.Engine, onCycle func(*engine.CycleReport), onAlerts func([]model.Candidate)) *Scheduler {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		log.Printf("[WARN] load Asia/Shanghai location: %v, falling back to local time", err)
		loc = time.Local
	}
	return &Scheduler{
		Cron:     cron.New(),
		Engine:   eng,
		Ctx:      ctx,
		cfg:      cfg,
		loc:      loc,
		onCycle:  onCycle,
		onAlerts: onAlerts,
	}
}

// RegisterAll wires the full scan and the fast watch loop.
func (s *Scheduler) RegisterAll() error {
	if _, err := s.Cron.AddFunc(s.cfg.Schedule.ScanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(s.cfg.Schedule.WatchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes a full scan cycle immediately (manual trigger).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	if s.skipOutsideTradingHours("scan") {
		return
	}
	report, err := s.Engine.RunCycle(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] scan cycle failed: %v", err)
		return
	}
	log.Printf("[INFO] scan cycle done: %d scored, %d triggered, %d fills",
		len(report.Scores), len(report.Triggered), len(report.Transactions))
	if s.onCycle != nil {
		s.onCycle(report)
	}
}

func (s *Scheduler) watchTask() {
	if s.skipOutsideTradingHours("watch") {
		return
	}
	alerts, err := s.Engine.RunWatch(s.Ctx)
	if err != nil {
		log.Printf("[WARN] watch pass failed: %v", err)
		return
	}
	if len(alerts) > 0 && s.onAlerts != nil {
		s.onAlerts(alerts)
	}
}

func (s *Scheduler) skipOutsideTradingHours(task string) bool {
	if !s.cfg.Schedule.TradingHoursOnly {
		return false
	}
	if isTradingTime(time.Now().In(s.loc)) {
		return false
	}
	log.Printf("[INFO] %s skipped outside trading hours", task)
	return true
}

// isTradingTime reports whether t falls in an A-share session:
// weekdays 9:25-11:30 (includes the opening call auction tail) and
// 13:00-15:00. Exchange holidays are not tracked; those scans simply
// see an unchanged snapshot.
func isTradingTime(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	morning := minutes >= 9*60+25 && minutes <= 11*60+30
	afternoon := minutes >= 13*60 && minutes <= 15*60
	return morning || afternoon
}
