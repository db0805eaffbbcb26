// Package cli builds the cobra command tree, binds every flag to a
// FACTGRAPH_* environment variable through viper, validates user input and
// maps failures to process exit codes. It translates flags into the
// application's internal configuration.
package cli
