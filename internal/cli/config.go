package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Translation provider names
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Upload target names
const (
	TargetPersonal     = "personal"
	TargetOrganization = "organization"
)

const (
	defaultSourceDataset = "TheFinAI/Fino1_Reasoning_Path_FinQA"
	defaultModelName     = "gemini-1.5-flash-latest"
	defaultOutputDir     = "./translated_data"
	defaultFinalFilename = "finqa_arabic_complete.jsonl"
	checkpointSubdir     = "checkpoints"
)

var defaultFields = []string{
	"Open-ended Verifiable Question",
	"Ground-True Answer",
	"Complex_CoT",
	"Response",
}

// Config holds all settings for the translator and publisher. It is
// built once at startup from viper (config file + environment) and
// passed explicitly into the components; nothing reads process-wide
// state after LoadConfig returns.
type Config struct {
	// API credentials
	GeminiAPIKey string
	OpenAIAPIKey string
	HFToken      string

	// Translation settings
	Provider  string
	ModelName string
	Fields    []string

	// Source dataset
	SourceDataset string
	DatasetConfig string
	DatasetSplit  string

	// Batch processing
	StartIndex    int
	BatchSize     int
	MaxSamples    int
	APIRetries    int
	APIRetryDelay time.Duration

	// Local output
	OutputDir string
	CachePath string

	// Publishing
	UploadTarget     string
	PersonalRepoPath string
	OrgRepoPath      string
}

// LoadConfig builds a Config from the current viper state
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey: viper.GetString("gemini_api_key"),
		OpenAIAPIKey: viper.GetString("openai_api_key"),
		HFToken:      viper.GetString("hf_token"),

		Provider:  strings.ToLower(viper.GetString("translation_provider")),
		ModelName: viper.GetString("model_name"),
		Fields:    fieldsFromViper(),

		SourceDataset: viper.GetString("source_dataset_name"),
		DatasetConfig: viper.GetString("dataset_config"),
		DatasetSplit:  viper.GetString("dataset_split"),

		StartIndex:    viper.GetInt("start_index"),
		BatchSize:     viper.GetInt("batch_size"),
		MaxSamples:    viper.GetInt("max_samples"),
		APIRetries:    viper.GetInt("api_retries"),
		APIRetryDelay: time.Duration(viper.GetFloat64("api_retry_delay") * float64(time.Second)),

		OutputDir: viper.GetString("output_dir"),
		CachePath: viper.GetString("cache_path"),

		UploadTarget:     strings.ToLower(viper.GetString("upload_target")),
		PersonalRepoPath: viper.GetString("personal_hub_repo_path"),
		OrgRepoPath:      viper.GetString("org_hub_repo_path"),
	}
}

// fieldsFromViper reads the fields-to-translate setting, accepting
// either a YAML list or a comma-separated string (the env var form).
// String values split on commas only: field names like "Ground-True
// Answer" contain spaces and must stay intact.
func fieldsFromViper() []string {
	if s := viper.GetString("fields_to_translate"); s != "" {
		var fields []string
		for _, f := range strings.Split(s, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		return fields
	}
	return viper.GetStringSlice("fields_to_translate")
}

// CheckpointDir returns the directory holding per-batch checkpoint files
func (c *Config) CheckpointDir() string {
	return filepath.Join(c.OutputDir, checkpointSubdir)
}

// ConsolidatedPath returns the path of the final merged JSONL file
func (c *Config) ConsolidatedPath() string {
	return filepath.Join(c.OutputDir, defaultFinalFilename)
}

// ValidateTranslate checks everything the translator needs before any
// work is attempted. A failure here means no batch is processed.
func (c *Config) ValidateTranslate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is not set")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is not set")
		}
	default:
		return fmt.Errorf("invalid translation provider %q: use %q or %q", c.Provider, ProviderGemini, ProviderOpenAI)
	}

	if c.SourceDataset == "" {
		return fmt.Errorf("SOURCE_DATASET_NAME is not set")
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("FIELDS_TO_TRANSLATE is empty")
	}
	if c.StartIndex < 0 {
		return fmt.Errorf("START_INDEX must not be negative, got %d", c.StartIndex)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.MaxSamples < 0 {
		return fmt.Errorf("MAX_SAMPLES must not be negative, got %d", c.MaxSamples)
	}
	if c.APIRetries <= 0 {
		return fmt.Errorf("API_RETRIES must be positive, got %d", c.APIRetries)
	}
	if c.APIRetryDelay < 0 {
		return fmt.Errorf("API_RETRY_DELAY must not be negative")
	}
	return nil
}

// ValidateUpload checks everything the publisher needs before any
// network call is made. The upload target is validated during
// repository resolution, where an explicit --repo-name makes it moot.
func (c *Config) ValidateUpload() error {
	if c.HFToken == "" {
		return fmt.Errorf("HF_TOKEN is not set")
	}
	return nil
}
