package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"AShareSentinel/internal/config"
	"AShareSentinel/internal/notifier"
)

var (
	scanMaxCandidates  int
	scanScoreThreshold float64
	scanNotify         bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "执行一次完整扫描并输出结果",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyScanOverrides(cfg); err != nil {
			return err
		}

		eng, db, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		report, err := eng.RunCycle(ctx)
		if err != nil {
			return fmt.Errorf("scan cycle: %w", err)
		}

		msg := notifier.FormatCycleReport(report, cfg.Scoring.QualifyingThreshold)
		fmt.Fprintln(os.Stdout, stripHTML(msg))

		if scanNotify {
			if tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy); tn != nil {
				if err := tn.SendWithRetry(ctx, msg, 2); err != nil {
					return fmt.Errorf("notify: %w", err)
				}
			}
		}
		return nil
	},
}

// applyScanOverrides folds the scan flags into the config and re-validates,
// since the root command validated before the flags were applied.
func applyScanOverrides(c *config.Config) error {
	if scanMaxCandidates > 0 {
		c.Scoring.MaxCandidates = scanMaxCandidates
	}
	if scanScoreThreshold > 0 {
		c.Scoring.QualifyingThreshold = scanScoreThreshold
	}
	return c.Validate()
}

func init() {
	scanCmd.Flags().IntVar(&scanMaxCandidates, "max-candidates", 0, "每个策略的候选上限 (0 使用配置值)")
	scanCmd.Flags().Float64Var(&scanScoreThreshold, "score-threshold", 0, "达标分数线 (0 使用配置值)")
	scanCmd.Flags().BoolVar(&scanNotify, "notify", false, "同时推送到 Telegram")
}
