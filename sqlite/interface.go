package sqlite

import "github.com/aalemi-dev/odbcerr/sqlerr"

// ErrorTranslator classifies SQLite driver errors. *Translator implements it.
type ErrorTranslator interface {
	// TranslateError returns nil for nil, otherwise a *sqlerr.Error wrapping err.
	TranslateError(function string, err error) error

	// TranslateAreaError is TranslateError for a statement with a caller-managed area.
	TranslateAreaError(function string, area *sqlerr.DiagArea, err error) error

	// Capture posts the records of err into area and returns how many were posted.
	Capture(area *sqlerr.DiagArea, err error) int
}
