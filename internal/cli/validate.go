package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/config"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/invoker"
)

// NewValidateCmd создаёт команду validate.
//
// Проверяет конфигурацию и доступность инструментов, не запуская
// ни одной стадии. Удобно гонять перед постановкой ночного прогона.
func NewValidateCmd(logger *slog.Logger) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a run configuration without executing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := invoker.CheckTools(invoker.RequiredTools()...); err != nil {
				return err
			}
			if cfg.EnableQC && !invoker.HasTool(invoker.ToolFastp) {
				logger.Warn("fastp not found on PATH, QC reports would be disabled")
			}
			if cfg.OversubscribedCPU() {
				logger.Warn("workers*threads exceeds available CPU cores",
					"workers", cfg.Workers,
					"threads", cfg.Threads,
				)
			}

			baseDir, err := resolveBaseDir(cfg)
			if err != nil {
				return err
			}
			samples, skipped := cfg.BuildSamples(baseDir)
			fmt.Fprintf(cmd.OutOrStdout(), "configuration OK: %d samples to process", len(samples))
			if len(skipped) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", %d will be skipped (empty tag)", len(skipped))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to run configuration (JSON)")
	cmd.MarkFlagRequired("config")

	return cmd
}
