// Package dataset reads source rows from the Hugging Face
// datasets-server API and provides the line-delimited JSON codec used
// for checkpoint and consolidated files.
package dataset
