package mdpress

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Converter option validation errors.
	ErrInvalidEngine    = errors.New("invalid engine")
	ErrInvalidCodeStyle = errors.New("invalid code style")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Style loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// wrapSentinel pairs an internal error with a public sentinel. The result
// keeps the original message via Error() and matches the sentinel with
// errors.Is() via Unwrap(). Internal sentinels stay unexported this way.
func wrapSentinel(sentinel, original error) error {
	return &sentinelError{sentinel: sentinel, original: original}
}

type sentinelError struct {
	sentinel error
	original error
}

func (e *sentinelError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
func (e *sentinelError) Unwrap() error {
	return e.sentinel
}
