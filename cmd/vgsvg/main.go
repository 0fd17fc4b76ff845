// Command vgsvg renders a saved drawing as an SVG file.
//
// Usage:
//
//	vgsvg [flags] <drawing.{json,yaml,toml}>
//
// The look of the output is read from an optional TOML file given with
// -config:
//
//	margin = 10
//	background = "white"
//	precision = 3
//
//	[style]
//	line_color = "navy"
//	line_width = 1.5
//	line_style = "dash"
//	fill_color = "#ffcc0080"
//
// The style applies to shapes that don't carry their own.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"honnef.co/go/vg"
	"honnef.co/go/vg/imageres"
	"honnef.co/go/vg/shape"
	"honnef.co/go/vg/storage"
)

type options struct {
	input   string
	output  string
	config  string
	images  string
	strict  bool
	verbose bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "vgsvg: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "vgsvg: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("vgsvg", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: vgsvg [flags] <drawing>\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.output, "o", "-", "Output file, - for stdout")
	fs.StringVar(&opts.config, "config", "", "TOML file with page and style settings")
	fs.StringVar(&opts.images, "images", "", "Directory to resolve image shapes in; images are fitted to their pictures")
	fs.BoolVar(&opts.strict, "strict", false, "Fail on records that can't be loaded instead of skipping them")
	fs.BoolVar(&opts.verbose, "v", false, "Log debug messages")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, errors.New("missing drawing path")
	}
	opts.input = fs.Arg(0)
	return opts, nil
}

func run(opts options, stdout, stderr io.Writer) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	vg.SetLogger(log)
	defer vg.SetLogger(nil)

	cfg := defaultConfig()
	if opts.config != "" {
		var err error
		cfg, err = loadConfig(opts.config)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	style, err := cfg.Style.context()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	doc, err := storage.Open(opts.input)
	if err != nil {
		return fmt.Errorf("open drawing: %w", err)
	}
	ss, err := shape.LoadShapes(shape.NewFactory(), doc)
	if err != nil {
		if opts.strict {
			return fmt.Errorf("load drawing: %w", err)
		}
		log.Warn("some shapes were skipped", "loaded", ss.Len(), "records", len(doc.Shapes))
	}

	if opts.images != "" {
		if err := imageres.NewResolver(os.DirFS(opts.images)).FitAll(ss); err != nil {
			log.Warn("some images couldn't be resolved", "err", err)
		}
	}

	if opts.output == "-" {
		if err := writeSVG(stdout, ss, cfg, style); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		return nil
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := writeSVG(f, ss, cfg, style); err != nil {
		f.Close()
		return fmt.Errorf("write svg: %w", err)
	}
	return f.Close()
}
