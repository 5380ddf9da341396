package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kpauljoseph/trimfit/pkg/logger"
	"github.com/kpauljoseph/trimfit/pkg/models"
)

type Mode int

const (
	// ModeTrimFit trims each page to its content and fits it onto the
	// target size. The default.
	ModeTrimFit Mode = iota
	// ModeTrim only crops pages to their content box.
	ModeTrim
	// ModeFit places the full original page onto the target size.
	ModeFit
)

func (m Mode) String() string {
	switch m {
	case ModeTrim:
		return "trim"
	case ModeFit:
		return "fit"
	default:
		return "trimfit"
	}
}

const (
	DefaultRenderDPI      = 150
	DefaultWhiteThreshold = 0.95
)

// Options configures a Processor. Target and Margin are in points and
// ignored in ModeTrim.
type Options struct {
	Mode           Mode
	Target         types.Dim
	Margin         float64
	RenderDPI      int
	WhiteThreshold float64
}

var _ DocumentProcessor = (*Processor)(nil)

type Processor struct {
	mode     Mode
	target   types.Dim
	margin   float64
	detector *Detector
	logger   *logger.Logger
}

func NewProcessor(opts Options, log *logger.Logger) (*Processor, error) {
	if opts.RenderDPI <= 0 {
		opts.RenderDPI = DefaultRenderDPI
	}
	if opts.WhiteThreshold <= 0 {
		opts.WhiteThreshold = DefaultWhiteThreshold
	}

	if opts.Mode != ModeTrim {
		if err := ValidateMargin(opts.Target, opts.Margin); err != nil {
			return nil, err
		}
	}

	return &Processor{
		mode:     opts.Mode,
		target:   opts.Target,
		margin:   opts.Margin,
		detector: NewDetector(opts.RenderDPI, opts.WhiteThreshold, log),
		logger:   log,
	}, nil
}

// ProcessFile runs the configured pipeline over every page of
// inputPath and writes the resulting document to outputPath. On error
// no output file is left behind.
func (p *Processor) ProcessFile(ctx context.Context, inputPath, outputPath string) (*models.RunReport, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}
	if strings.ToLower(filepath.Ext(inputPath)) != ".pdf" {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, inputPath)
	}

	report := &models.RunReport{
		InputPath:  inputPath,
		OutputPath: outputPath,
		StartTime:  time.Now(),
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := pdfapi.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, inputPath, err)
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, inputPath, err)
	}
	if pdfCtx.PageCount == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, inputPath)
	}
	report.PageCount = pdfCtx.PageCount

	var fitzDoc *fitz.Document
	if p.mode != ModeFit {
		fitzDoc, err = fitz.New(inputPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, inputPath, err)
		}
		defer fitzDoc.Close()
	}

	p.logger.Info("Processing %s (%d pages, mode %s)", inputPath, pdfCtx.PageCount, p.mode)

	segments := make([][]byte, 0, pdfCtx.PageCount)

	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		seg, stats, err := p.processPage(pdfCtx, fitzDoc, pageNr)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}

		segments = append(segments, seg)
		report.Pages = append(report.Pages, stats)
	}

	if err := writeDocument(segments, outputPath); err != nil {
		return nil, err
	}

	report.EndTime = time.Now()
	p.logger.Info("Wrote %s", outputPath)

	return report, nil
}

func (p *Processor) processPage(pdfCtx *model.Context, fitzDoc *fitz.Document, pageNr int) ([]byte, models.PageStats, error) {
	var stats models.PageStats
	stats.PageNum = pageNr

	_, _, inh, err := pdfCtx.PageDict(pageNr, false)
	if err != nil {
		return nil, stats, err
	}

	pageBox := inh.CropBox
	if pageBox == nil {
		pageBox = inh.MediaBox
	}
	if pageBox == nil {
		return nil, stats, fmt.Errorf("no page box")
	}

	rot := inh.Rotate % 360
	if rot < 0 {
		rot += 360
	}

	// Detection and placement happen in display space: the page as a
	// renderer shows it, rotation applied. pageSegment bakes the same
	// rotation into the content stream.
	dispBox := pageBox
	if rot != 0 {
		w, h := pageBox.Width(), pageBox.Height()
		if rot%180 == 90 {
			w, h = h, w
		}
		dispBox = types.RectForWidthAndHeight(0, 0, w, h)
	}

	stats.OriginalWidth = dispBox.Width()
	stats.OriginalHeight = dispBox.Height()

	contentBox := dispBox
	if p.mode != ModeFit {
		box, found, err := p.detector.ContentBox(fitzDoc, pageNr-1, dispBox)
		if err != nil {
			return nil, stats, err
		}
		if found {
			contentBox = box
		} else {
			stats.Blank = true
		}
	}

	stats.ContentWidth = contentBox.Width()
	stats.ContentHeight = contentBox.Height()

	var (
		pageDim types.Dim
		pl      Placement
	)

	if p.mode == ModeTrim {
		pageDim = types.Dim{Width: contentBox.Width(), Height: contentBox.Height()}
		pl = Placement{Scale: 1}
	} else {
		pageDim = p.target
		pl, err = FitContent(types.Dim{Width: contentBox.Width(), Height: contentBox.Height()}, p.target, p.margin)
		if err != nil {
			return nil, stats, err
		}
	}
	stats.Scale = pl.Scale

	p.logger.Debug("page %d: %.2fx%.2fpt content -> %.2fx%.2fpt page, scale %.3f",
		pageNr, contentBox.Width(), contentBox.Height(), pageDim.Width, pageDim.Height, pl.Scale)

	seg, err := pageSegment(pdfCtx, pageNr, contentBox, pageDim, pl)
	if err != nil {
		return nil, stats, err
	}

	return seg, stats, nil
}
