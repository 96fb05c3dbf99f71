package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/intake/internal/config"
	"github.com/aretw0/intake/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	v       = config.New()
	cfg     config.Config
	logger  = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "intake",
	Short:         "Intake is a multi-step insurance application wizard",
	Long:          `Intake collects auto and property insurance applications step by step, validates them and delivers them by email.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		logger = logging.NewWithOptions(os.Stderr, level, logging.Format(cfg.Log.Format))
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")
	pf.String("store", "memory", "Session store (memory, redis)")
	pf.String("redis-addr", "localhost:6379", "Redis address")
	pf.String("mail-driver", "log", "Delivery driver (resend, log, memory)")

	bindFlag(pf.Lookup("log-level"), "log.level")
	bindFlag(pf.Lookup("log-format"), "log.format")
	bindFlag(pf.Lookup("store"), "session.store")
	bindFlag(pf.Lookup("redis-addr"), "redis.addr")
	bindFlag(pf.Lookup("mail-driver"), "mail.driver")
}
