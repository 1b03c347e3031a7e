package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/crawl"
	"github.com/fwojciec/symdex/doxyxml"
	"github.com/fwojciec/symdex/fs"
	"github.com/fwojciec/symdex/goquery"
	"github.com/fwojciec/symdex/htmltomarkdown"
	symhttp "github.com/fwojciec/symdex/http"
	"github.com/fwojciec/symdex/readability"
	symslog "github.com/fwojciec/symdex/slog"
	"github.com/fwojciec/symdex/sqlite"
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

	// Log level name ("debug", "info", ...). Empty disables logging.
	LogLevel string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	IndexService symdex.IndexService
	TableService symdex.TableService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:   defaultDBPath(),
		LogLevel: os.Getenv("SYMDEX_LOG"),
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
	logger := NewLogger(m.LogLevel, stderr)

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("symdex"),
		kong.Description("Search and regenerate Doxygen symbol search indexes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'symdex --help' to see available commands")
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

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SYMDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.IndexService = sqlite.NewIndexService(m.DB)
	m.TableService = symslog.NewLoggingTableService(sqlite.NewTableService(m.DB), logger)
	deps.Indexes = m.IndexService
	deps.Tables = m.TableService

	switch cmd {
	case "add":
		fetcher := symslog.NewLoggingFetcher(NewSourceFetcher(), logger)
		defer fetcher.Close()

		deps.Loader = &crawl.Loader{
			Fetcher:     fetcher,
			RateLimiter: crawl.NewDomainLimiter(defaultRequestsPerSecond),
			Concurrency: cli.Add.Concurrency,
			Logger: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		}
		deps.XMLSource = symslog.NewLoggingSource(doxyxml.NewSource(fetcher), logger)

	case "show":
		fetcher := symslog.NewLoggingFetcher(NewSourceFetcher(), logger)
		defer fetcher.Close()

		deps.Fetcher = fetcher
		deps.Detector = symslog.NewLoggingDetector(goquery.NewDetector(), logger)
		deps.Extractor = readability.NewFallbackExtractor(goquery.NewMemberExtractor())
		deps.Converter = htmltomarkdown.NewConverter()
		deps.NewMemberWriter = func(dir string) symdex.MemberWriter {
			return fs.NewWriter(dir)
		}

	case "export":
		deps.NewSiteStore = func(dir string) symdex.SiteStore {
			return fs.NewSiteWriter(dir)
		}
	}

	return kongCtx.Run(deps)
}

// defaultRequestsPerSecond limits fetches per documentation host.
const defaultRequestsPerSecond = 5.0

// NewSourceFetcher returns a fetcher that reads remote locations over HTTP
// and everything else from the local filesystem.
func NewSourceFetcher() *SourceFetcher {
	return &SourceFetcher{
		Remote: symhttp.NewFetcher(),
		Local:  fs.NewFetcher(""),
	}
}

// NewLogger returns a text logger writing to w at the named level.
// An empty level returns a logger that discards everything.
func NewLogger(level string, w io.Writer) *slog.Logger {
	level = strings.TrimSpace(level)
	if level == "" {
		return slog.New(slog.DiscardHandler)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func defaultDBPath() string {
	if path := os.Getenv("SYMDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "symdex.db"
	}
	dir := filepath.Join(home, ".symdex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "symdex.db")
}
