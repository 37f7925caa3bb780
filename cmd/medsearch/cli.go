package main

import (
	"context"
	"io"

	"github.com/fwojciec/medsearch"
	"github.com/fwojciec/medsearch/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Config  medsearch.Config
	Crawler *crawl.Crawler
	Reports medsearch.ReportWriter
}

// CLI defines the command-line interface structure for Kong. The program
// has a single operation, so the query is a positional argument on the
// root command.
type CLI struct {
	Query string `arg:"" help:"Medication name to search DailyMed for"`

	APIKey   string `env:"GEMINI_API_KEY" help:"Gemini API key for AI-assisted classification (falls back to keyword heuristics when unset)"`
	Output   string `short:"o" help:"Report file path (default: <query>_results.md in the working directory)"`
	Config   string `short:"c" help:"YAML file overriding the allergen and form keyword lists"`
	BaseURL  string `name:"base-url" help:"DailyMed search endpoint (for testing)"`
	PageSize int    `name:"page-size" default:"200" help:"Results requested per search page"`
	Verbose  bool   `short:"v" help:"Log fetch and analysis activity to stderr"`
}
