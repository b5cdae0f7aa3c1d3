package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/errors"
	"github.com/matzehuels/otelviz/pkg/io"
	"github.com/matzehuels/otelviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output directory
	formats    []string // svg, json, png, pdf, html, dot
	engine     string   // native or graphviz
	idPrefix   string   // marker id prefix
	responsive bool     // fluid width SVG
	scale      float64  // PNG scale factor
	noCache    bool     // skip the artifact cache entirely
	refresh    bool     // re-render and overwrite cached artifacts
	watch      bool     // re-render when inputs change
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file|dir]...",
		Short: "Render diagram descriptions to SVG, HTML, JSON, PNG, PDF or DOT",
		Long: `Render reads YAML, JSON or TOML diagram descriptions and writes one file
per diagram and format, named <diagram>.<format>, into the output directory.

A description file holds either a single diagram or a "diagrams:" bundle.
Directories are scanned (non-recursively) for description files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			opts.formats = cfg.Render.Formats
			if formatsStr != "" {
				opts.formats = parseFormats(formatsStr)
			}
			if !cmd.Flags().Changed("engine") {
				opts.engine = cfg.Render.Engine
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateEngine(opts.engine); err != nil {
				return err
			}

			if opts.watch {
				return c.watchRender(cmd.Context(), args, &opts)
			}
			_, err := c.runRender(cmd.Context(), args, &opts)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, json, png, pdf, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", pipeline.EngineNative, "layout engine: native, graphviz")
	cmd.Flags().StringVar(&opts.idPrefix, "id-prefix", "", "prefix for SVG element ids")
	cmd.Flags().BoolVar(&opts.responsive, "responsive", false, "size SVGs to their container")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when inputs change")

	return cmd
}

// runRender renders every document found in inputs and returns the paths
// written.
func (c *CLI) runRender(ctx context.Context, inputs []string, opts *renderOpts) ([]string, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	docs, err := loadDocuments(inputs)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loaded %d diagram(s) from %d input(s)", len(docs), len(inputs))

	formats, err := usableFormats(opts.formats)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Cache.Close()

	results, err := runner.RenderAll(ctx, docs, pipeline.Options{
		Formats:    formats,
		Engine:     opts.engine,
		IDPrefix:   opts.idPrefix,
		Responsive: opts.responsive,
		Scale:      opts.scale,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, res := range results {
		for _, f := range formats {
			data, ok := res.Artifacts[f]
			if !ok {
				continue
			}
			path := filepath.Join(opts.output, res.Name+"."+f)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return written, fmt.Errorf("write %s: %w", path, err)
			}
			written = append(written, path)
			printFile(path)
		}
		fmt.Println(statsLine(string(res.Kind), res.Stats.ShapeCount, res.Skipped, res.CacheInfo.RenderHit))
	}

	prog.done(fmt.Sprintf("Rendered %d diagram(s) to %d file(s)", len(results), len(written)))
	if !opts.watch && len(inputs) == 1 {
		if info, err := os.Stat(inputs[0]); err == nil && info.IsDir() {
			printNextStep("Preview in a browser", "otelviz serve --dir "+inputs[0])
		}
	}
	return written, nil
}

// usableFormats drops png and pdf when rsvg-convert is missing, unless
// nothing would remain.
func usableFormats(formats []string) ([]string, error) {
	if pipeline.ConverterAvailable() {
		return formats, nil
	}
	needs := func(f string) bool { return f == pipeline.FormatPNG || f == pipeline.FormatPDF }
	kept := slices.DeleteFunc(slices.Clone(formats), needs)
	if len(kept) == len(formats) {
		return formats, nil
	}
	if len(kept) == 0 {
		return nil, errors.New(errors.ErrCodeUnsupported, "png and pdf output need rsvg-convert on PATH")
	}
	printWarning("rsvg-convert not found, skipping png/pdf")
	return kept, nil
}

// loadDocuments imports every input, which may be a description file or a
// directory of them. Names must be unique across inputs.
func loadDocuments(inputs []string) ([]diagram.Document, error) {
	var all []diagram.Document
	origin := make(map[string]string)

	for _, in := range inputs {
		var docs []diagram.Document
		info, err := os.Stat(in)
		switch {
		case err != nil && os.IsNotExist(err):
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", in)
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", in, err)
		case info.IsDir():
			docs, err = io.ImportDir(in)
		default:
			docs, err = io.ImportFile(in)
		}
		if err != nil {
			return nil, err
		}

		for _, d := range docs {
			if prev, dup := origin[d.Name]; dup && prev != in {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"diagram %q defined in both %s and %s", d.Name, prev, in)
			}
			origin[d.Name] = in
		}
		all = append(all, docs...)
	}

	if len(all) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no diagrams found in %v", inputs)
	}
	return all, nil
}
