package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kpauljoseph/trimfit/internal/config"
	"github.com/kpauljoseph/trimfit/internal/pdf"
	"github.com/kpauljoseph/trimfit/pkg/logger"
	"github.com/kpauljoseph/trimfit/pkg/pagesize"
	"github.com/kpauljoseph/trimfit/pkg/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	sizeSpec := flag.String("size", "", `output page size: WIDTHxHEIGHT in inches or a paper name (default "letter")`)
	landscape := flag.Bool("landscape", false, "landscape orientation (paper names only)")
	portrait := flag.Bool("portrait", false, "portrait orientation (paper names only)")
	margin := flag.Float64("margin", 0.5, "minimum margin in inches")
	trimOnly := flag.Bool("trim", false, "trim whitespace only, do not fit to page")
	fitOnly := flag.Bool("fit", false, "fit to page only, do not trim whitespace")
	dpi := flag.Int("dpi", 0, "render DPI for whitespace detection (default 150)")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Print(version.GetDetailedVersionInfo())
		return
	}

	log := logger.New(logger.WithPrefix("[trimfit] "))
	log.SetVerbose(*verbose)

	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	if *trimOnly && *fitOnly {
		log.Fatal("--trim and --fit are mutually exclusive")
	}
	if *landscape && *portrait {
		log.Fatal("--landscape and --portrait are mutually exclusive")
	}

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}
	}

	marginSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "margin" {
			marginSet = true
		}
	})

	if err := overrideConfig(cfg, *sizeSpec, marginSet, *margin, *dpi); err != nil {
		log.Fatal("%v", err)
	}

	mode := pdf.ModeTrimFit
	switch {
	case *trimOnly:
		mode = pdf.ModeTrim
	case *fitOnly:
		mode = pdf.ModeFit
	}

	opts := pdf.Options{
		Mode:           mode,
		RenderDPI:      cfg.RenderDPI,
		WhiteThreshold: cfg.WhiteThreshold,
	}

	// Trim-only runs never resolve a target size: size, orientation and
	// margin are meaningless there.
	if mode != pdf.ModeTrim {
		orient := pagesize.OrientationDefault
		if *landscape {
			orient = pagesize.OrientationLandscape
		}
		if *portrait {
			orient = pagesize.OrientationPortrait
		}

		target, err := pagesize.Resolve(cfg.Size, orient)
		if err != nil {
			log.Fatal("%v", err)
		}

		opts.Target = target
		opts.Margin = cfg.MarginInches * pagesize.PointsPerInch
	}

	inputPath := args[0]
	outputPath := defaultOutputPath(inputPath, cfg.OutputSuffix)
	if len(args) == 2 {
		outputPath = args[1]
	}

	processor, err := pdf.NewProcessor(opts, log)
	if err != nil {
		log.Fatal("%v", err)
	}

	report, err := processor.ProcessFile(context.Background(), inputPath, outputPath)
	if err != nil {
		log.Fatal("%v", err)
	}

	log.Debug("Run summary:")
	for _, page := range report.Pages {
		log.Debug("- page %d: %.2fx%.2fpt -> scale %.3f", page.PageNum, page.ContentWidth, page.ContentHeight, page.Scale)
	}
	log.Info("Processed %d pages in %s", report.PageCount, report.EndTime.Sub(report.StartTime).Round(time.Millisecond))

	fmt.Println(report.OutputPath)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: trimfit [flags] input.pdf [output.pdf]")
	fmt.Fprintln(os.Stderr, "\nAuto-trim whitespace and normalize PDF pages to a uniform size with a minimum margin.")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

// overrideConfig applies explicitly passed CLI flags onto cfg.
// marginSet reports whether --margin appeared on the command line; a
// negative margin there is rejected rather than falling back to the
// config default.
func overrideConfig(cfg *config.Config, size string, marginSet bool, margin float64, dpi int) error {
	if size != "" {
		cfg.Size = size
	}
	if marginSet {
		if margin < 0 {
			return fmt.Errorf("--margin must be non-negative, got %g", margin)
		}
		cfg.MarginInches = margin
	}
	if dpi > 0 {
		cfg.RenderDPI = dpi
	}
	return nil
}

func defaultOutputPath(inputPath, suffix string) string {
	stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return stem + suffix
}
