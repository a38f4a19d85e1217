package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/arabify/internal"
)

// CreateTranslateCommand creates and configures the root cobra command
// for the arabify translator binary.
func CreateTranslateCommand(flags *TranslateFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arabify",
		Short: "Batched English to Arabic dataset translator",
		Long: `arabify translates the text fields of a Hugging Face dataset from
English into Modern Standard Arabic using a generative-language API.

It processes the dataset in fixed-size batches, writes one checkpoint
file per batch, skips batches whose checkpoint already exists (so an
interrupted run can be resumed), and finally merges all checkpoints
into a single consolidated JSONL file.

Examples:
  arabify                          # Translate using $HOME/.arabify.yaml and env vars
  arabify --config ./arabify.yaml  # Translate using an explicit config file`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	rootCmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.arabify.yaml)")

	return rootCmd
}

// CreateUploadCommand creates and configures the root cobra command
// for the arabify-upload publisher binary.
func CreateUploadCommand(flags *UploadFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arabify-upload",
		Short: "Publish a translated dataset to the Hugging Face Hub",
		Long: `arabify-upload pushes the consolidated JSONL file produced by arabify
to a Hugging Face dataset repository, creating the repository when it
does not exist yet.

The target repository is taken from --repo-name when given, otherwise
from UPLOAD_TARGET (personal or organization) mapped to
PERSONAL_HUB_REPO_PATH or ORG_HUB_REPO_PATH.

Examples:
  arabify-upload                                   # Upload using env configuration
  arabify-upload --repo-name someuser/finqa-arabic # Override the target repository`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	rootCmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.arabify.yaml)")
	rootCmd.Flags().StringVar(&flags.FilePath, "file-path", "", "Path to the consolidated .jsonl file (default: <output_dir>/"+defaultFinalFilename+")")
	rootCmd.Flags().StringVar(&flags.RepoName, "repo-name", "", "Override the Hugging Face Hub repo (default: resolved from UPLOAD_TARGET)")

	return rootCmd
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".arabify" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".arabify")
	}

	bindEnv()
	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindEnv maps config keys to their conventional environment variable
// names. The env names are unprefixed because they are shared with the
// original pipeline tooling (GEMINI_API_KEY, HF_TOKEN, ...).
func bindEnv() {
	envs := map[string]string{
		"gemini_api_key":         "GEMINI_API_KEY",
		"openai_api_key":         "OPENAI_API_KEY",
		"hf_token":               "HF_TOKEN",
		"upload_target":          "UPLOAD_TARGET",
		"personal_hub_repo_path": "PERSONAL_HUB_REPO_PATH",
		"org_hub_repo_path":      "ORG_HUB_REPO_PATH",
		"source_dataset_name":    "SOURCE_DATASET_NAME",
		"dataset_config":         "DATASET_CONFIG",
		"dataset_split":          "DATASET_SPLIT",
		"model_name":             "MODEL_NAME",
		"translation_provider":   "TRANSLATION_PROVIDER",
		"start_index":            "START_INDEX",
		"batch_size":             "BATCH_SIZE",
		"max_samples":            "MAX_SAMPLES",
		"fields_to_translate":    "FIELDS_TO_TRANSLATE",
		"api_retries":            "API_RETRIES",
		"api_retry_delay":        "API_RETRY_DELAY",
		"output_dir":             "OUTPUT_DIR",
		"cache_path":             "CACHE_PATH",
	}
	for key, env := range envs {
		viper.BindEnv(key, env)
	}
}

func setDefaults() {
	viper.SetDefault("upload_target", "personal")
	viper.SetDefault("source_dataset_name", defaultSourceDataset)
	viper.SetDefault("dataset_config", "default")
	viper.SetDefault("dataset_split", "train")
	viper.SetDefault("model_name", defaultModelName)
	viper.SetDefault("translation_provider", ProviderGemini)
	viper.SetDefault("start_index", 0)
	viper.SetDefault("batch_size", 100)
	viper.SetDefault("max_samples", 0)
	viper.SetDefault("fields_to_translate", defaultFields)
	viper.SetDefault("api_retries", 3)
	viper.SetDefault("api_retry_delay", 5)
	viper.SetDefault("output_dir", defaultOutputDir)
}
