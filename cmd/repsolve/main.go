// Package main provides the repsolve command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Parse()

	if showVersion {
		fmt.Printf("repsolve version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	// .env is optional; local environment wins when absent.
	_ = godotenv.Load()
	initConfig()

	logger := newLogger()
	defer logger.Sync()

	switch args[0] {
	case "compare":
		return runCompare(args[1:], logger)
	case "clusters":
		return runClusters(args[1:], logger)
	case "lists":
		return runLists(args[1:], logger)
	case "config":
		cmd := newConfigCmd()
		cmd.SetArgs(args[1:])
		if err := cmd.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitSuccess
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `repsolve - Replicon identity resolution and consensus engine

Usage:
  repsolve [options] <command> [arguments]

Commands:
  compare     Compare old and new classifier calls and homogenize them
  clusters    Annotate pangenome gene clusters with consensus replicons
  lists       Generate chromosome list and unlocalised list files
  config      Manage repsolve configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Compare two classifier runs and resolve conflicts
  repsolve compare --old old_summary.tsv --new new_summary.tsv

  # Apply manual overrides and the chromosome length heuristic
  repsolve compare --old old.tsv --new new.tsv \
      --overrides overrides.tsv --auto-chromosome-bp 100000

  # Annotate gene clusters with consensus replicons
  repsolve clusters --gene-data gene_data.csv --clusters clusters.tsv

  # Generate submission chromosome lists
  repsolve lists --classifier calls_with_stats.tsv --output-dir lists/ --mode classified

For more information on a command, use:
  repsolve <command> --help
`)
}

// initConfig wires viper to the optional ~/.repsolve.yaml config file.
// Flag defaults consult it through the *Default helpers below.
func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.SetConfigFile(filepath.Join(home, ".repsolve.yaml"))
	_ = viper.ReadInConfig()
}

// newLogger builds the run logger. The level comes from REPSOLVE_LOG
// (debug, info, warn; default warn so normal runs stay quiet) and every
// entry carries the run ID.
func newLogger() *zap.Logger {
	level := zapcore.WarnLevel
	switch strings.ToLower(os.Getenv("REPSOLVE_LOG")) {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("run_id", uuid.NewString()))
}

// floatDefault returns the config file value for key when set, else the
// fallback. Used for flag defaults.
func floatDefault(key string, fallback float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return fallback
}

// int64Default returns the config file value for key when set, else the
// fallback.
func int64Default(key string, fallback int64) int64 {
	if viper.IsSet(key) {
		return viper.GetInt64(key)
	}
	return fallback
}
