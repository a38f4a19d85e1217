// Package hub publishes the consolidated dataset file to a Hugging
// Face dataset repository over the Hub HTTP API: token preflight,
// idempotent repository creation and a single-file commit.
package hub
