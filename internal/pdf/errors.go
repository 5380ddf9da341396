package pdf

import "errors"

var (
	// ErrInputNotFound means the input path does not exist.
	ErrInputNotFound = errors.New("input PDF not found")

	// ErrNotPDF means the input path does not name a .pdf file.
	ErrNotPDF = errors.New("input must be a .pdf file")

	// ErrUnreadableDocument means the input could not be parsed as a PDF.
	ErrUnreadableDocument = errors.New("unreadable PDF document")

	// ErrEmptyDocument means the input has no pages.
	ErrEmptyDocument = errors.New("document has no pages")

	// ErrMarginTooLarge means twice the margin meets or exceeds a target
	// page dimension, leaving no content area.
	ErrMarginTooLarge = errors.New("margin too large for target size")
)
