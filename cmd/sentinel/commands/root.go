package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"AShareSentinel/internal/advisory"
	"AShareSentinel/internal/config"
	"AShareSentinel/internal/engine"
	"AShareSentinel/internal/feed"
	"AShareSentinel/internal/store"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "A股选股哨兵: 策略筛选, 综合评分, 连续上榜追踪与模拟交易",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real env vars win either way.
		if err := godotenv.Load(); err == nil {
			log.Println("[INFO] .env loaded")
		}
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "配置文件路径")
	rootCmd.AddCommand(scanCmd, watchCmd, accountCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// buildEngine assembles the pipeline from config. The caller owns closing
// the returned store.
func buildEngine(c *config.Config) (*engine.Engine, store.Store, error) {
	fetcher := feed.NewEastmoneyFetcher(c.Feed.BaseURL, time.Duration(c.Feed.TimeoutSeconds)*time.Second, c.Proxy)
	cache := feed.NewSnapshotCache(fetcher, time.Duration(c.Cache.TTLSeconds)*time.Second)

	var adv advisory.Advisor = advisory.NoopAdvisor{}
	if c.Advisory.Enabled {
		adv = advisory.NewQwenAdvisor(c)
		log.Printf("[INFO] advisory enabled: %s", c.Advisory.Model)
	}

	var db store.Store
	if c.Database.SQLitePath == "" {
		db = store.NoopStore{}
		log.Println("[WARN] no database path configured, running without persistence")
	} else {
		var err error
		db, err = store.NewSQLiteStore(c.Database.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
	}

	eng, err := engine.New(c, cache, fetcher, adv, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return eng, db, nil
}
