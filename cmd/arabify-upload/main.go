package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/arabify/internal/cli"
	"codeberg.org/snonux/arabify/internal/hub"
)

func main() {
	// Create flags instance
	flags := cli.NewUploadFlags()

	// Create root command
	rootCmd := cli.CreateUploadCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runUpload(cmd.Context(), flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runUpload(ctx context.Context, flags *cli.UploadFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := cli.LoadConfig()
	if err := cfg.ValidateUpload(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	repo, err := hub.ResolveRepo(flags.RepoName, cfg.UploadTarget, cfg.PersonalRepoPath, cfg.OrgRepoPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	filePath := flags.FilePath
	if filePath == "" {
		filePath = cfg.ConsolidatedPath()
	}
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("input file not found at %s: %w", filePath, err)
	}

	uploader := hub.NewUploader(hub.Options{Token: cfg.HFToken})
	return uploader.Upload(ctx, repo, filePath)
}
