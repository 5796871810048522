package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gastrade/ugs-auction/app"
	"github.com/gastrade/ugs-auction/config"
	"github.com/gastrade/ugs-auction/infra/logger"
)

var (
	curvePath string
	outDir    string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Solve the annual schedule and derive the auction bid",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&curvePath, "curve", "", "forward curve CSV (required)")
	optimizeCmd.Flags().StringVar(&outDir, "out", "", "override the output directory")
	_ = optimizeCmd.MarkFlagRequired("curve")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx, curvePath)
}
