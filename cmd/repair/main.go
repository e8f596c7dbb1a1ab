package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dataset-cutter/config"
	"dataset-cutter/internal/appdirs"
	"dataset-cutter/internal/deps"
	"dataset-cutter/internal/service"
	"dataset-cutter/internal/types"
	"dataset-cutter/log"
)

var (
	flagRoot      string
	flagCFR       int
	flagDryRun    bool
	flagBackupExt string
	flagExts      []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repair",
		Short: "Normalize every clip in a Training tree to the h264/yuv420p/aac profile",
		Long: `Walks the {root}/{label}/*.mp4 tree and re-normalizes every clip:
compatible files are remuxed with faststart, incompatible ones are re-encoded
through the fallback ladder. Each repaired file replaces the original
atomically, keeping a backup alongside.`,
		SilenceUsage: true,
		RunE:         runRepair,
	}

	rootCmd.Flags().StringVar(&flagRoot, "root", "", "Training tree to repair (default: configured dataset root)")
	rootCmd.Flags().IntVar(&flagCFR, "cfr", 0, "constant frame rate for re-encodes (default: configured repair cfr)")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would be done without touching files")
	rootCmd.Flags().StringVar(&flagBackupExt, "backup-ext", "", "backup suffix for replaced files (default: configured)")
	rootCmd.Flags().StringSliceVar(&flagExts, "ext", nil, "extra extensions to process (default: .mp4, .mov, .m4v)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRepair(cmd *cobra.Command, args []string) error {
	log.InitLogger()
	defer log.GetLogger().Sync()

	if !config.LoadConfig() {
		return fmt.Errorf("cannot load configuration")
	}
	if err := deps.CheckDependency(); err != nil {
		return fmt.Errorf("dependency check: %w", err)
	}

	opts := types.RepairOptions{
		Root:         flagRoot,
		CFR:          config.Conf.Repair.CFR,
		DryRun:       flagDryRun,
		BackupSuffix: config.Conf.Repair.BackupExt,
	}
	if opts.Root == "" {
		opts.Root = appdirs.TrainingRootFor(config.GetExport().DatasetRoot)
	}
	if flagCFR > 0 {
		opts.CFR = flagCFR
	}
	if flagBackupExt != "" {
		opts.BackupSuffix = flagBackupExt
	}
	if len(flagExts) > 0 {
		opts.Exts = flagExts
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	svc := service.NewService()
	report, err := svc.RepairDataset(ctx, opts, func(result types.RepairFileResult) {
		if result.Err != "" {
			fmt.Printf("FAIL  %-10s %s: %s\n", result.Label, result.Path, result.Err)
			return
		}
		fmt.Printf("OK    %-10s %s (%s)\n", result.Label, result.Path, result.Action)
	})
	if err != nil {
		log.GetLogger().Error("repair aborted", zap.Error(err))
		return err
	}

	fmt.Printf("processed=%d repaired=%d failed=%d dry_run=%v\n",
		report.Processed, report.Repaired, report.Failed, report.DryRun)
	if report.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", report.Failed)
	}
	return nil
}
