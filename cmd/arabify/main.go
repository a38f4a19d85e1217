package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/arabify/internal/batch"
	"codeberg.org/snonux/arabify/internal/cli"
	"codeberg.org/snonux/arabify/internal/dataset"
	"codeberg.org/snonux/arabify/internal/translation"
)

func main() {
	// Create flags instance
	flags := cli.NewTranslateFlags()

	// Create root command
	rootCmd := cli.CreateTranslateCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runTranslate(cmd.Context())
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTranslate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := cli.LoadConfig()
	if err := cfg.ValidateTranslate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Build the translation chain: provider (+ optional cache) wrapped
	// by the bounded retrier
	provider, err := translation.NewProvider(ctx, cfg)
	if err != nil {
		return err
	}
	if closer, ok := provider.(io.Closer); ok {
		defer closer.Close()
	}
	retrier := translation.NewRetrier(provider, cfg.APIRetries, cfg.APIRetryDelay)

	source := dataset.NewClient(dataset.Options{
		Dataset: cfg.SourceDataset,
		Config:  cfg.DatasetConfig,
		Split:   cfg.DatasetSplit,
		Token:   cfg.HFToken,
	})

	fmt.Printf("Source dataset: %s (%s/%s)\n", cfg.SourceDataset, cfg.DatasetConfig, cfg.DatasetSplit)
	fmt.Printf("Translation provider: %s (%s)\n", cfg.Provider, cfg.ModelName)

	proc := batch.NewProcessor(batch.Options{
		StartIndex:    cfg.StartIndex,
		BatchSize:     cfg.BatchSize,
		MaxSamples:    cfg.MaxSamples,
		Fields:        cfg.Fields,
		CheckpointDir: cfg.CheckpointDir(),
		OutputPath:    cfg.ConsolidatedPath(),
	}, source, retrier)

	if err := proc.Run(ctx); err != nil {
		return err
	}

	path, rows, err := proc.Consolidate()
	if err != nil {
		return err
	}

	fmt.Printf("\nDone! Consolidated file with %d rows ready at: %s\n", rows, path)
	fmt.Printf("Run 'arabify-upload' to push it to the Hub.\n")
	return nil
}
