// Command medcrawl crawls medical device cybersecurity guidance sources
// and stores the extracted content as bounded-size document chunks.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mwalczak/medcrawl/crawl"
	"github.com/mwalczak/medcrawl/extract"
	"github.com/mwalczak/medcrawl/fs"
	"github.com/mwalczak/medcrawl/goquery"
	medhttp "github.com/mwalczak/medcrawl/http"
	"github.com/mwalczak/medcrawl/pdf"
	medslog "github.com/mwalczak/medcrawl/slog"
	"github.com/mwalczak/medcrawl/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the document store.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("medcrawl"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'medcrawl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MEDCRAWL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Documents = medslog.NewLoggingDocumentStore(sqlite.NewDocumentStore(m.DB), logger)
	deps.Sitemaps = medslog.NewLoggingSitemapService(medhttp.NewSitemapService(nil), logger)

	if cmd == "run" {
		fetcher := medhttp.NewFetcher(
			medhttp.WithTimeout(time.Duration(cli.Run.Timeout) * time.Second),
		)

		htmlParser := goquery.NewParser()
		deps.Crawler = &crawl.Crawler{
			Fetcher:   medslog.NewLoggingFetcher(fetcher, logger),
			Extractor: extract.NewExtractor(htmlParser, pdf.NewParser()),
			Links:     htmlParser,
			Documents: deps.Documents,
			Limiter:   crawl.NewDomainLimiter(cli.Run.RPS),
			Logger:    logger,
		}

		if cli.Run.Export != "" {
			deps.Writer = fs.NewWriter(cli.Run.Export)
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("MEDCRAWL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "medcrawl.db"
	}
	dir := filepath.Join(home, ".medcrawl")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "medcrawl.db")
}

func logLevel() slog.Level {
	if os.Getenv("MEDCRAWL_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
