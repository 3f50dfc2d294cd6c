package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tsawler/pdf2html"
	"github.com/tsawler/pdf2html/config"
	"github.com/tsawler/pdf2html/htmlout"
	"github.com/tsawler/pdf2html/internal/worker"
	"github.com/tsawler/pdf2html/pdftohtml"
)

// rcCacheTTL bounds how long a parsed rc file is reused within one run
const rcCacheTTL = 10 * time.Minute

// app holds the state shared by every command of one invocation
type app struct {
	cfgFile string

	// flags and PDF2HTML_* environment variables
	flags *viper.Viper

	// the global config file
	file *viper.Viper

	rcCache *config.RCCache
	logger  *slog.Logger
}

// NewRootCommand builds the pdf2html command tree
func NewRootCommand() *cobra.Command {
	a := &app{
		flags:   viper.New(),
		file:    viper.New(),
		rcCache: config.NewRCCache(rcCacheTTL, 2*rcCacheTTL),
		logger:  slog.New(slog.DiscardHandler),
	}

	rootCmd := &cobra.Command{
		Use:   "pdf2html [flags] input.pdf|input.xml [output.html]",
		Short: "Convert PDF files to paragraph-structured HTML",
		Long: `pdf2html converts a PDF (or the XML written by "pdftohtml -xml") into
simple HTML with one element per paragraph.

Paragraph breaks are found from the document's own line spacing,
first-line indent and left margin. Each of these is calibrated
automatically unless set explicitly.

Put a .pdf2html.yaml file in the same directory as the source PDF to set
options per file. Every section whose glob pattern matches the file name
is applied, in order:

  "*":
    skip_generator: true
  "chapter-*.pdf":
    header_pos: 66
    footer_pos: -50

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (PDF2HTML_*)
3. .pdf2html.yaml sections next to the input
4. Config file (~/.pdf2html/config.yaml)
5. Defaults`,
		Args:              cobra.RangeArgs(1, 2),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
		RunE:              a.runConvert,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.pdf2html/config.yaml)")
	pf.Bool("debug", false, "print debugging information")
	pf.Bool("keep", false, "keep the intermediate XML file")
	pf.String("pdftohtml", pdftohtml.DefaultBinary, "pdftohtml executable")
	pf.String("title", "", "document title")
	pf.String("subtitle", "", "document subtitle")
	pf.Float64("header-pos", -1, "drop text above this Y position (-1: off)")
	pf.Float64("footer-pos", -1, "drop text below this Y position; below -1 counts from the page bottom (-1: off)")
	pf.Int("skip-initial-pages", 0, "skip the first N pages")
	pf.Bool("skip-generator", false, `skip <meta name="generator">`)
	pf.Float64("leading", 0, "vertical gap between lines of a paragraph (default: calibrated)")
	pf.Float64("indent", 0, "first-line paragraph indent (default: calibrated)")
	pf.Float64("left-margin", 0, "left margin of body text (default: calibrated)")
	pf.Float64("horiz-leeway", 0, "horizontal alignment tolerance (default: calibrated)")
	pf.Float64("min-line-width", 0, "end a paragraph after a line narrower than this (0: off)")
	pf.Bool("guess-min-line-width", false, "guess --min-line-width from the most common text widths")
	pf.Bool("mirror-margins", false, "calibrate separate margins for odd and even pages")
	pf.Bool("join-hyphenated", true, "join words hyphenated across lines")
	pf.Bool("detect-headings", true, "emit short large-font paragraphs as <h2>")
	pf.Bool("sort-by-position", true, "sort text on each page top to bottom")
	pf.String("encoding", "UTF-8", "output character encoding")

	// Bind flags to viper under their config-file names
	pf.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		_ = a.flags.BindPFlag(optionKey(f.Name), f)
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(a.newBatchCmd())
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Display the version number of pdf2html.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pdf2html v%s by %s\n", pdf2html.Version, pdf2html.Author)
		},
	}
}

// initConfig reads the global config file and environment, then installs
// the logger
func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	// Read in environment variables that match PDF2HTML_*
	a.flags.SetEnvPrefix("PDF2HTML")
	a.flags.AutomaticEnv()

	path, err := a.configPath()
	if err != nil {
		return err
	}
	a.file.SetConfigFile(path)
	a.file.SetConfigType("yaml")
	if err := a.file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	level := slog.LevelInfo
	if a.flags.GetBool("debug") || (!a.flags.IsSet("debug") && a.file.GetBool("debug")) {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.logger.Debug("configuration", "file", path)
	return nil
}

// configPath returns the global config file location
func (a *app) configPath() (string, error) {
	if a.cfgFile != "" {
		return a.cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	return filepath.Join(home, ".pdf2html", "config.yaml"), nil
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := worker.OutputPath(input, "")
	if len(args) > 1 {
		output = args[1]
	}

	_, err := a.ConvertFile(cmd.Context(), input, output)
	return err
}

// optionsFor layers defaults, the global config file, matching rc sections
// and finally flags and environment for one input file
func (a *app) optionsFor(input string) (config.Options, error) {
	rcPath := config.RCPathFor(input)
	rc, err := a.rcCache.Load(rcPath)
	if err != nil {
		return config.Options{}, err
	}

	opts := config.Defaults().Merge(layerFrom(a.file))
	opts, applied := rc.Apply(opts, input)
	for _, pattern := range applied {
		a.logger.Debug("applying rc section", "section", pattern, "file", rcPath, "input", input)
	}
	return opts.Merge(layerFrom(a.flags)), nil
}

// ConvertFile converts one input to one HTML file
func (a *app) ConvertFile(ctx context.Context, input, output string) (worker.Stats, error) {
	opts, err := a.optionsFor(input)
	if err != nil {
		return worker.Stats{}, err
	}

	runner := pdftohtml.NewRunner()
	runner.Binary = a.binary()
	runner.Logger = a.logger

	doc, warnings, err := pdf2html.Open(input).
		WithOptions(opts).
		WithRunner(runner).
		WithLogger(a.logger).
		Document(ctx)
	if err != nil {
		return worker.Stats{}, fmt.Errorf("%s: %w", input, err)
	}
	for _, w := range warnings {
		a.logger.Warn("conversion warning", "input", input, "page", w.Page, "warning", w.Message)
	}

	if err := htmlout.NewWriter().WriteFile(output, doc); err != nil {
		return worker.Stats{}, fmt.Errorf("%s: %w", output, err)
	}

	stats := worker.Stats{Paragraphs: doc.ParagraphCount(), Warnings: len(warnings)}
	a.logger.Info("converted",
		"input", input,
		"output", output,
		"paragraphs", stats.Paragraphs,
		"warnings", stats.Warnings)
	return stats, nil
}

func (a *app) binary() string {
	if a.flags.IsSet("pdftohtml") {
		return a.flags.GetString("pdftohtml")
	}
	if a.file.IsSet("pdftohtml") {
		return a.file.GetString("pdftohtml")
	}
	return pdftohtml.DefaultBinary
}
