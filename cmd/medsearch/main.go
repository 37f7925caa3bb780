package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/medsearch"
	"github.com/fwojciec/medsearch/crawl"
	"github.com/fwojciec/medsearch/fs"
	"github.com/fwojciec/medsearch/gemini"
	"github.com/fwojciec/medsearch/goquery"
	medhttp "github.com/fwojciec/medsearch/http"
	medslog "github.com/fwojciec/medsearch/slog"
	medyaml "github.com/fwojciec/medsearch/yaml"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// requestInterval paces consecutive requests to DailyMed.
const requestInterval = 100 * time.Millisecond

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// The report already states that nothing qualified; the non-zero
		// exit code is the machine-readable signal.
		if !errors.Is(err, ErrNoResults) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("medsearch"),
		kong.Description("Search DailyMed for medications free of configured allergens, in capsule or liquid form."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no query specified. Run 'medsearch --help' for usage")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := medsearch.DefaultConfig()
	if cli.Config != "" {
		cfg, err = medyaml.LoadConfig(cli.Config)
		if err != nil {
			return fmt.Errorf("failed to load config %q: %w", cli.Config, err)
		}
	}
	deps.Config = cfg

	logWriter := io.Discard
	if cli.Verbose {
		logWriter = stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, nil))
	retryLog := func(format string, a ...any) {
		fmt.Fprintf(stderr, format+"\n", a...)
	}

	var fetcher medsearch.Fetcher = medslog.NewLoggingFetcher(medhttp.NewFetcher(), logger)
	defer fetcher.Close()

	keyword := &medsearch.KeywordFormAnalyzer{
		Qualifying:    cfg.QualifyingForms,
		Disqualifying: cfg.DisqualifyingForms,
	}

	var forms medsearch.FormAnalyzer = keyword
	var ingredients medsearch.IngredientExtractor = goquery.NewIngredientExtractor()

	if cli.APIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		forms = gemini.NewFormAnalyzer(client, keyword)
		ingredients = gemini.NewIngredientExtractor(client, ingredients, goquery.IngredientExcerpt)
	} else {
		fmt.Fprintln(stderr, "GEMINI_API_KEY not set; classifying with keyword heuristics only")
	}
	forms = medslog.NewLoggingFormAnalyzer(forms, logger)

	classifier := &crawl.Classifier{
		Fetcher:     fetcher,
		Warnings:    goquery.NewWarningDetector(),
		Titles:      goquery.NewTitleExtractor(),
		Forms:       forms,
		Ingredients: ingredients,
		Allergens:   cfg.Allergens,
		Logger:      retryLog,
	}

	deps.Crawler = &crawl.Crawler{
		Fetcher:    fetcher,
		Search:     goquery.NewSearchParser(),
		Classifier: classifier,
		BaseURL:    cli.BaseURL,
		PageSize:   cli.PageSize,
		Limiter:    rate.NewLimiter(rate.Every(requestInterval), 1),
		Logger:     retryLog,
	}
	if cli.Output != "" {
		deps.Reports = fs.NewFileWriter(cli.Output)
	} else {
		deps.Reports = fs.NewWriter(".")
	}

	return kongCtx.Run(deps)
}
