package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"AShareSentinel/internal/notifier"
	"AShareSentinel/internal/store"
)

var accountRecent int

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "查看模拟账户与最近评分记录 (只读)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database.SQLitePath == "" {
			return fmt.Errorf("no database configured")
		}
		db, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()

		acct, err := db.LoadAccount()
		if err != nil {
			return err
		}
		if acct == nil {
			fmt.Fprintln(os.Stdout, "账户尚未初始化, 先运行 sentinel scan")
			return nil
		}
		fmt.Fprintln(os.Stdout, stripHTML(notifier.FormatAccount(*acct)))

		streaks, err := db.LoadStreaks()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, stripHTML(notifier.FormatStreaks(streaks, cfg.Portfolio.StreakThreshold)))

		if accountRecent > 0 {
			records, err := db.RecentScores(accountRecent)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "\n最近评分:")
			for _, r := range records {
				fmt.Fprintf(os.Stdout, "  %s %s(%s) [%s] 综合%.0f %s\n",
					r.CycleAt.Format("01-02 15:04"), r.Name, r.Symbol, r.Strategy.Label(), r.Composite, r.Recommendation)
			}
		}

		return nil
	},
}

func init() {
	accountCmd.Flags().IntVar(&accountRecent, "recent", 0, "显示最近 N 条评分记录")
}
