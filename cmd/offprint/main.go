package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mlapinski/offprint"
	"github.com/mlapinski/offprint/assets"
	"github.com/mlapinski/offprint/bluemonday"
	"github.com/mlapinski/offprint/epub"
	"github.com/mlapinski/offprint/goquery"
	ophttp "github.com/mlapinski/offprint/http"
	"github.com/mlapinski/offprint/readability"
	"github.com/mlapinski/offprint/rod"
	"github.com/mlapinski/offprint/scrape"
	opslog "github.com/mlapinski/offprint/slog"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is where the login confirmation is read from.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Output    string        `short:"o" help:"Output EPUB path (default: derived from the edition date)"`
	Rules     string        `short:"r" help:"YAML rules file layered over the built-in defaults" type:"existingfile"`
	Limit     int           `short:"n" help:"Process at most this many articles (0 = all)"`
	Delay     time.Duration `short:"d" default:"2s" help:"Minimum interval between page requests"`
	Timeout   time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	Headless  bool          `help:"Run the browser headless (no login prompt; requires a pre-authenticated profile)"`
	SkipLogin bool          `help:"Skip the interactive login step"`
	Verbose   bool          `short:"v" help:"Enable debug logging"`
	URL       string        `arg:"" optional:"" help:"Edition index URL (default: the current weekly edition)"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("offprint"),
		kong.Description("Convert the current weekly edition into an EPUB"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	rules := offprint.DefaultRules()
	if cli.Rules != "" {
		if rules, err = offprint.LoadRules(cli.Rules); err != nil {
			return err
		}
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rodOpts := []rod.Option{rod.WithTimeout(cli.Timeout)}
	if cli.Headless {
		rodOpts = append(rodOpts, rod.WithHeadless())
	}
	browser, err := rod.NewFetcher(rodOpts...)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer browser.Close()

	if !cli.SkipLogin && !cli.Headless {
		if err := m.login(ctx, browser, rules, stdout); err != nil {
			return err
		}
	}

	pacer := scrape.NewPacer(cli.Delay)
	imageFetcher := scrape.NewPacedByteFetcher(
		opslog.NewByteFetcher(ophttp.NewByteFetcher(ophttp.WithTimeout(cli.Timeout)), logger),
		pacer,
	)

	scraper := &scrape.Scraper{
		Fetcher: opslog.NewFetcher(browser, logger),
		Index:   goquery.NewIndex(rules),
		Extractor: goquery.NewExtractor(rules, bluemonday.NewSanitizer(),
			goquery.NewRoleStrategy(),
			goquery.NewBodyMarkerStrategy(),
			goquery.NewStructuralStrategy(),
			readability.NewStrategy(),
		),
		Resolver: assets.NewResolver(rules, imageFetcher),
		Rules:    rules,
		Pacer:    pacer,
		Logger:   logger,
		Limit:    cli.Limit,
	}

	indexURL := cli.URL
	if indexURL == "" {
		indexURL = rules.IndexURL()
	}

	edition, report, err := scraper.Run(ctx, indexURL, func(p scrape.Progress) {
		if p.Err != nil {
			fmt.Fprintf(stdout, "[%d/%d] FAILED %s: %v\n", p.Completed, p.Total, p.URL, p.Err)
			return
		}
		fmt.Fprintf(stdout, "[%d/%d] %s\n", p.Completed, p.Total, p.Title)
	})
	if err != nil {
		return err
	}

	output := cli.Output
	if output == "" {
		output = edition.Metadata.Identifier + ".epub"
	}

	writer := epub.NewWriter(rules.MaxImagesPerArticle)
	size, err := writer.WriteFile(output, edition)
	if err != nil {
		return err
	}

	printSummary(stdout, edition, report, output, size)
	return nil
}

// login opens the login page in the visible browser and blocks until the
// operator confirms authentication on stdin.
func (m *Main) login(ctx context.Context, browser *rod.Fetcher, rules offprint.Rules, stdout io.Writer) error {
	fmt.Fprintln(stdout, "A browser window is opening on the login page.")
	fmt.Fprintln(stdout, "Log in there, then press Enter here to continue.")

	done := make(chan struct{})
	go func() {
		defer close(done)
		bufio.NewScanner(m.Stdin).Scan()
	}()

	return browser.AwaitLogin(ctx, rules.LoginURL(), done)
}
