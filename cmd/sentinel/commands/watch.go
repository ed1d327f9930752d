package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"AShareSentinel/internal/engine"
	"AShareSentinel/internal/model"
	"AShareSentinel/internal/notifier"
	"AShareSentinel/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "常驻运行: 定时扫描, 盘中异动监控与 Telegram 推送",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, db, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		if tn == nil {
			log.Println("[WARN] telegram not configured, running without notifications")
		}

		onCycle := func(r *engine.CycleReport) {
			if tn == nil {
				return
			}
			if err := tn.SendWithRetry(ctx, notifier.FormatCycleReport(r, cfg.Scoring.QualifyingThreshold), 2); err != nil {
				log.Printf("[ERROR] push cycle report: %v", err)
			}
		}
		onAlerts := func(alerts []model.Candidate) {
			if tn == nil {
				return
			}
			if err := tn.SendWithRetry(ctx, notifier.FormatWatchAlerts(alerts), 2); err != nil {
				log.Printf("[ERROR] push watch alerts: %v", err)
			}
		}

		sched := scheduler.NewScheduler(ctx, cfg, eng, onCycle, onAlerts)
		if err := sched.RegisterAll(); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if tn != nil {
			go tn.StartPolling(ctx, commandHandler(eng, sched))
		}

		log.Printf("[INFO] sentinel watching: scan %q, watch %q", cfg.Schedule.ScanCron, cfg.Schedule.WatchCron)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sig:
			log.Printf("[INFO] received %s, shutting down", s)
		case <-ctx.Done():
		}
		return nil
	},
}

// commandHandler serves the Telegram chat commands.
func commandHandler(eng *engine.Engine, sched *scheduler.Scheduler) notifier.CommandHandler {
	return func(command string) string {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return ""
		}
		switch fields[0] {
		case "/scan":
			go sched.RunScanNow()
			return "🔍 扫描已触发, 结果稍后推送"
		case "/refresh":
			eng.InvalidateSnapshot()
			return "♻️ 行情缓存已清空, 下次扫描将重新拉取"
		case "/account":
			return notifier.FormatAccount(eng.Account())
		case "/streaks":
			return notifier.FormatStreaks(eng.Streaks(), cfg.Portfolio.StreakThreshold)
		case "/help", "/start":
			return "可用命令:\n/scan 立即扫描\n/refresh 清空行情缓存\n/account 查看模拟账户\n/streaks 查看连续上榜"
		default:
			return fmt.Sprintf("未知命令 %q, 发送 /help 查看可用命令", command)
		}
	}
}
