package main

import (
	"context"
	"io"

	"github.com/mwalczak/medcrawl"
	"github.com/mwalczak/medcrawl/crawl"
	"github.com/mwalczak/medcrawl/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Documents medcrawl.DocumentStore
	Sitemaps  medcrawl.SitemapService
	Crawler   *crawl.Crawler
	Writer    medcrawl.DocumentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB string `help:"Path to the SQLite database (overrides MEDCRAWL_DB)"`

	Run    RunCmd    `cmd:"" help:"Crawl a guidance source and store document chunks"`
	Status StatusCmd `cmd:"" help:"Show recently stored documents"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored document by ID"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL          string   `arg:"" help:"Start URL to crawl"`
	Name         string   `short:"n" help:"Human-readable name for the target"`
	Depth        int      `short:"d" default:"2" help:"Maximum link depth from the start URL"`
	Mime         []string `short:"m" name:"mime" help:"Content types to store (repeatable, default HTML+PDF+DOCX)"`
	MaxChunkSize int      `name:"max-chunk-size" help:"Chunk size ceiling in characters (0 = default)"`
	Update       bool     `default:"true" negatable:"" help:"Re-fetch URLs whose documents are already stored"`
	Timeout      int      `default:"30" help:"Per-request timeout in seconds"`
	RPS          float64  `name:"rps" default:"1" help:"Requests per second per domain"`
	Sitemap      bool     `help:"Seed the crawl with URLs discovered from the site's sitemaps"`
	Export       string   `short:"e" help:"Also export stored chunks as text files to this directory"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	Limit int    `short:"l" default:"20" help:"Number of documents to show"`
	Type  string `short:"t" help:"Filter by source type (HTML, PDF, ...)"`
	Full  bool   `help:"Show full document content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Document ID"`
}
