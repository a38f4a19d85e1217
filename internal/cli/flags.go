package cli

// TranslateFlags holds command-line flag values for the translator.
// The translator is configuration driven and takes no positional
// arguments, so only the config file location is exposed.
type TranslateFlags struct {
	CfgFile string
}

// NewTranslateFlags creates a new TranslateFlags instance
func NewTranslateFlags() *TranslateFlags {
	return &TranslateFlags{}
}

// UploadFlags holds command-line flag values for the publisher
type UploadFlags struct {
	CfgFile  string
	FilePath string
	RepoName string
}

// NewUploadFlags creates a new UploadFlags instance
func NewUploadFlags() *UploadFlags {
	return &UploadFlags{}
}
