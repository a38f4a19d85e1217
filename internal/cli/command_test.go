package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestCreateTranslateCommand(t *testing.T) {
	flags := NewTranslateFlags()
	cmd := CreateTranslateCommand(flags)

	if cmd.Use != "arabify" {
		t.Errorf("Unexpected command use: %s", cmd.Use)
	}
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("Missing --config flag")
	}

	// The translator is config driven and takes no positional args
	if err := cmd.Args(cmd, []string{"unexpected"}); err == nil {
		t.Error("Translator should reject positional arguments")
	}
}

func TestCreateUploadCommand(t *testing.T) {
	flags := NewUploadFlags()
	cmd := CreateUploadCommand(flags)

	if cmd.Use != "arabify-upload" {
		t.Errorf("Unexpected command use: %s", cmd.Use)
	}
	registered := map[string]bool{}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		registered[f.Name] = true
	})
	for _, name := range []string{"file-path", "repo-name"} {
		if !registered[name] {
			t.Errorf("Missing --%s flag", name)
		}
	}
}

func TestCreateUploadCommand_FlagParsing(t *testing.T) {
	flags := NewUploadFlags()
	cmd := CreateUploadCommand(flags)

	if err := cmd.ParseFlags([]string{"--file-path", "out.jsonl", "--repo-name", "someuser/repo"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if flags.FilePath != "out.jsonl" {
		t.Errorf("FilePath = %s", flags.FilePath)
	}
	if flags.RepoName != "someuser/repo" {
		t.Errorf("RepoName = %s", flags.RepoName)
	}
}
