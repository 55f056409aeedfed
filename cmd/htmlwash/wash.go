package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/mrjoshuak/htmlwash"
	"github.com/mrjoshuak/htmlwash/policy"
)

// ErrInvalidAttr is returned for an --attr value without "=".
var ErrInvalidAttr = errors.New("invalid --attr: want key=value")

// washOptions holds the parsed flags of the wash command.
type washOptions struct {
	mode       htmlwash.Mode
	preset     string
	overrides  policy.Overrides
	scrubURLs  bool
	output     string
	outputDir  string
	jobs       int
	charset    string
	maxSize    int64
	outputExt  string
	inputPaths []string
}

// NewWashCmd creates the wash command.
func NewWashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wash [file...]",
		Short: "Wash HTML files or standard input",
		Long: `Run a washing pipeline over HTML files, or standard input when no file
or "-" is given.

Modes:
  wash           filter to the general allow-list and minify
  markdown-html  filter to the markdown allow-list and minify
  markdown       convert the markdown-html output to markdown
  automation     keep every tag but only automation attributes

Input is decoded to UTF-8 using --charset, or by sniffing the document
when --charset is not set.`,
		Example: `  htmlwash wash --preset pub-w page.html
  htmlwash wash --mode markdown --selector 'nav, footer' < page.html
  htmlwash wash --output-dir out/ --jobs 8 pages/*.html`,
		RunE: runWashCmd,
	}

	cmd.Flags().StringP("mode", "m", htmlwash.ModeWash.String(), "Pipeline: wash, markdown-html, markdown or automation")
	cmd.Flags().String("preset", "", "Cleanup preset name")
	cmd.Flags().StringArray("class", nil, "Class name to remove (repeatable)")
	cmd.Flags().StringArray("partial-class", nil, "Class substring to remove (repeatable)")
	cmd.Flags().StringArray("class-prefix", nil, "Class prefix to strip (repeatable)")
	cmd.Flags().StringArray("id", nil, "Element id to remove (repeatable)")
	cmd.Flags().StringArray("attr", nil, "Attribute key=value to remove (repeatable)")
	cmd.Flags().StringArray("selector", nil, "CSS selector to remove (repeatable)")
	cmd.Flags().StringArray("xpath", nil, "XPath expression to remove (repeatable)")
	cmd.Flags().Bool("scrub-urls", false, "Drop javascript: and other non-standard URLs")
	cmd.Flags().StringP("output", "o", "", "Output file for a single input (default: stdout)")
	cmd.Flags().String("output-dir", "", "Output directory for batch processing")
	cmd.Flags().IntP("jobs", "j", 4, "Number of files processed concurrently")
	cmd.Flags().String("charset", "", "Input character encoding, e.g. windows-1252 (default: detect)")
	cmd.Flags().Int64("max-size", 10*1024*1024, "Maximum input size in bytes")

	return cmd
}

func runWashCmd(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	opts, err := buildWashOptions(cmd, args)
	if err != nil {
		return err
	}

	presets, err := loadPresets(cmd, logger)
	if err != nil {
		return err
	}

	p := policy.Resolve(presets, opts.preset, opts.overrides)
	if err := p.Validate(); err != nil {
		return err
	}

	w := htmlwash.New(
		htmlwash.WithScrubURLs(opts.scrubURLs),
		htmlwash.WithMaxInputSize(opts.maxSize),
	)

	return washAll(cmd, w, p, opts, logger)
}

func buildWashOptions(cmd *cobra.Command, args []string) (*washOptions, error) {
	flags := cmd.Flags()
	opts := &washOptions{inputPaths: args}

	modeName, _ := flags.GetString("mode")
	mode, err := htmlwash.ParseMode(modeName)
	if err != nil {
		return nil, err
	}
	opts.mode = mode
	opts.outputExt = ".html"
	if mode == htmlwash.ModeMarkdown {
		opts.outputExt = ".md"
	}

	opts.preset, _ = flags.GetString("preset")
	opts.overrides.ClassNames, _ = flags.GetStringArray("class")
	opts.overrides.PartialClassNames, _ = flags.GetStringArray("partial-class")
	opts.overrides.ClassPrefixes, _ = flags.GetStringArray("class-prefix")
	opts.overrides.IDs, _ = flags.GetStringArray("id")
	opts.overrides.Selectors, _ = flags.GetStringArray("selector")
	opts.overrides.XPaths, _ = flags.GetStringArray("xpath")

	attrs, _ := flags.GetStringArray("attr")
	opts.overrides.Attributes, err = parseAttrs(attrs)
	if err != nil {
		return nil, err
	}

	opts.scrubURLs, _ = flags.GetBool("scrub-urls")
	opts.output, _ = flags.GetString("output")
	opts.outputDir, _ = flags.GetString("output-dir")
	opts.jobs, _ = flags.GetInt("jobs")
	opts.charset, _ = flags.GetString("charset")
	opts.maxSize, _ = flags.GetInt64("max-size")

	if len(opts.inputPaths) == 0 {
		opts.inputPaths = []string{"-"}
	}
	if opts.jobs < 1 {
		opts.jobs = 1
	}
	if opts.output != "" && len(opts.inputPaths) > 1 {
		return nil, errors.New("--output needs a single input; use --output-dir for several")
	}
	if opts.charset != "" {
		if _, err := htmlindex.Get(opts.charset); err != nil {
			return nil, fmt.Errorf("unknown charset %q: %w", opts.charset, err)
		}
	}

	return opts, nil
}

// parseAttrs turns key=value flags into an attribute map.
func parseAttrs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attrs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAttr, pair)
		}
		attrs[key] = value
	}
	return attrs, nil
}

// washAll processes every input concurrently. Results destined for stdout
// are written in argument order once all inputs are done.
func washAll(cmd *cobra.Command, w htmlwash.Washer, p policy.Policy, opts *washOptions, logger *slog.Logger) error {
	if opts.outputDir != "" {
		if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	results := make([]string, len(opts.inputPaths))

	var g errgroup.Group
	g.SetLimit(opts.jobs)

	for i, path := range opts.inputPaths {
		g.Go(func() error {
			out, err := washInput(cmd, w, p, opts, path)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(path), err)
			}

			dest := outputPath(opts, path)
			if dest == "" {
				results[i] = out
				return nil
			}
			if err := os.WriteFile(dest, []byte(out), 0o644); err != nil { //nolint:gosec // output is not sensitive
				return fmt.Errorf("writing %s: %w", dest, err)
			}
			logger.Info("washed", "input", displayName(path), "output", dest, "bytes", len(out))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	for _, out := range results {
		if out == "" {
			continue
		}
		if _, err := io.WriteString(stdout, out+"\n"); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

func washInput(cmd *cobra.Command, w htmlwash.Washer, p policy.Policy, opts *washOptions, path string) (string, error) {
	var in io.Reader
	if path == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(path) //nolint:gosec // path comes from the command line
		if err != nil {
			return "", err
		}
		defer f.Close()
		in = f
	}

	r, err := decodeInput(in, opts.charset)
	if err != nil {
		return "", err
	}
	return w.ProcessReader(opts.mode, r, p)
}

// decodeInput converts r to UTF-8. An explicit label is looked up in the
// WHATWG encoding index; otherwise the encoding is sniffed from a BOM, a
// meta tag or the content itself.
func decodeInput(r io.Reader, label string) (io.Reader, error) {
	if label != "" {
		enc, err := htmlindex.Get(label)
		if err != nil {
			return nil, fmt.Errorf("unknown charset %q: %w", label, err)
		}
		return enc.NewDecoder().Reader(r), nil
	}
	return charset.NewReader(r, "text/html")
}

// outputPath returns the file an input is written to, or "" for stdout.
func outputPath(opts *washOptions, input string) string {
	if opts.outputDir != "" && input != "-" {
		base := filepath.Base(input)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		return filepath.Join(opts.outputDir, name+opts.outputExt)
	}
	return opts.output
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
