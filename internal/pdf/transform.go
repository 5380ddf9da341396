package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// pageSegment extracts page pageNr from ctxSrc as a standalone one-page
// document of exactly page points, with the original content placed per
// pl relative to the content box. Page rotation is baked into the
// content stream so the emitted page carries no Rotate entry.
//
// The original content streams are never decoded: the transform is a
// prefix stream and a matching "Q" suffix stream spliced around them in
// the page's Contents array.
func pageSegment(ctxSrc *model.Context, pageNr int, content *types.Rectangle, page types.Dim, pl Placement) ([]byte, error) {
	ctxPage, err := pdfcpu.ExtractPages(ctxSrc, []int{pageNr}, false)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page %d: %w", pageNr, err)
	}
	if err := ctxPage.EnsurePageCount(); err != nil {
		return nil, err
	}

	pageDict, _, inh, err := ctxPage.PageDict(1, false)
	if err != nil {
		return nil, err
	}
	if pageDict == nil {
		return nil, fmt.Errorf("no page dict for page %d", pageNr)
	}

	newBox := types.RectForWidthAndHeight(0, 0, page.Width, page.Height)
	pageDict["MediaBox"] = newBox.Array()
	pageDict["CropBox"] = newBox.Array()

	// Rotation is applied below as a content transform.
	pageDict.Delete("Rotate")

	tx := pl.OffsetX - pl.Scale*content.LL.X
	ty := pl.OffsetY - pl.Scale*content.LL.Y

	var pre bytes.Buffer
	pre.WriteString("q ")
	fmt.Fprintf(&pre, "%.5f 0 0 %.5f %.5f %.5f cm ", pl.Scale, pl.Scale, tx, ty)
	if inh.Rotate != 0 {
		baseBox := inh.MediaBox
		if baseBox == nil {
			baseBox = content
		}
		pre.Write(model.ContentBytesForPageRotation(inh.Rotate, baseBox.Width(), baseBox.Height()))
	}

	preRef, err := newContentStream(ctxPage, pre.Bytes())
	if err != nil {
		return nil, err
	}
	sufRef, err := newContentStream(ctxPage, []byte(" Q "))
	if err != nil {
		return nil, err
	}

	contents := types.Array{*preRef}

	switch o := pageDict["Contents"].(type) {
	case types.IndirectRef:
		// The ref may point at a single stream or at an array of them.
		obj, err := ctxPage.Dereference(o)
		if err != nil {
			return nil, err
		}
		if arr, ok := obj.(types.Array); ok {
			contents = append(contents, arr...)
		} else {
			contents = append(contents, o)
		}
	case types.Array:
		contents = append(contents, o...)
	}

	contents = append(contents, *sufRef)
	pageDict["Contents"] = contents

	var out bytes.Buffer
	if err := pdfapi.WriteContext(ctxPage, &out); err != nil {
		return nil, fmt.Errorf("failed to write page %d: %w", pageNr, err)
	}

	return out.Bytes(), nil
}

func newContentStream(ctx *model.Context, buf []byte) (*types.IndirectRef, error) {
	streamDict, err := ctx.NewStreamDictForBuf(buf)
	if err != nil {
		return nil, err
	}
	if err := streamDict.Encode(); err != nil {
		return nil, err
	}
	return ctx.IndRefForNewObject(*streamDict)
}

// writeDocument merges the per-page segments in order and writes the
// result to outPath through a temp file, so a failed run leaves no
// partial output behind.
func writeDocument(segments [][]byte, outPath string) error {
	var data []byte

	if len(segments) == 1 {
		data = segments[0]
	} else {
		readers := make([]io.ReadSeeker, len(segments))
		for i, seg := range segments {
			readers[i] = bytes.NewReader(seg)
		}

		var merged bytes.Buffer
		conf := model.NewDefaultConfiguration()
		if err := pdfapi.MergeRaw(readers, &merged, false, conf); err != nil {
			return fmt.Errorf("failed to merge pages: %w", err)
		}
		data = merged.Bytes()
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".trimfit-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp output: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close output: %w", err)
	}

	if err := os.Rename(tmp.Name(), outPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to place output: %w", err)
	}

	return nil
}
