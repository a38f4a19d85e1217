// Package cli provides command-line interface setup and configuration
// for the arabify binaries. It handles flag parsing, command creation,
// and configuration management using cobra and viper, and builds the
// explicit Config struct that the translator and publisher consume.
package cli
