package corpus

import "errors"

var (
	// ErrSourceFailed wraps the error of a single source that could not be read.
	ErrSourceFailed = errors.New("corpus source failed")

	// ErrNoSources is returned when a Loader is built without any source.
	ErrNoSources = errors.New("no corpus sources configured")

	// ErrSheetNotFound indicates a workbook has no sheet with the requested name.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrMissingHeader indicates a sheet has no recognizable header row.
	ErrMissingHeader = errors.New("sheet has no recognizable header row")
)
