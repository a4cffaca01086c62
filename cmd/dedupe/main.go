package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-registry/internal/config"
	"github.com/spec-kit/employee-registry/internal/observability"
	"github.com/spec-kit/employee-registry/internal/repository"
	"github.com/spec-kit/employee-registry/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:          "dedupe",
		Short:        "Remove employees sharing the same email and phone, keeping the oldest",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := observability.NewLogger(cfg.Logger, cfg.App)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			return runDedupe(cmd.Context(), cfg, dryRun, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report duplicates without removing them")
	return cmd
}

func runDedupe(ctx context.Context, cfg *config.Config, dryRun bool, out io.Writer, logger *zap.Logger) error {
	store, err := repository.OpenStore(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := service.NewEmployeeService(service.EmployeeDependencies{
		Repo:   store.Employees,
		Logger: logger,
	})

	report, err := svc.RemoveDuplicates(ctx, dryRun)
	if err != nil {
		return err
	}
	logger.Info("dedupe finished",
		zap.Int("total", report.Total),
		zap.Int("kept", len(report.Kept)),
		zap.Int("removed", len(report.Removed)),
		zap.Bool("dry_run", report.DryRun))

	fmt.Fprintf(out, "Total de registros: %d\n", report.Total)
	fmt.Fprintf(out, "Registros únicos: %d\n", len(report.Kept))
	if dryRun {
		fmt.Fprintf(out, "Duplicados encontrados (não removidos): %d\n", len(report.Removed))
	} else {
		fmt.Fprintf(out, "Duplicados removidos: %d\n", len(report.Removed))
	}
	for _, e := range report.Removed {
		fmt.Fprintf(out, "  - %s %s <%s> %s\n", e.ID, e.Name, e.Email, e.Phone)
	}

	remaining := report.Kept
	if dryRun {
		remaining, err = store.Employees.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("list employees: %w", err)
		}
	}
	fmt.Fprintln(out, "Registros restantes:")
	for _, e := range remaining {
		fmt.Fprintf(out, "  %s %s <%s> %s\n", e.ID, e.Name, e.Email, e.Phone)
	}
	return nil
}
