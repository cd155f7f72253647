package postgres

import (
	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/aalemi-dev/odbcerr/pkg/translate"
	"github.com/aalemi-dev/odbcerr/sqlerr"
)

// Component is the observability component name of this package.
const Component = "postgres"

// Translator turns PostgreSQL driver errors into classified *sqlerr.Error
// values, observed as one "postgres/translate" operation each.
// Areas filled by NoticeHandler keep their notices behind the failure.
type Translator struct {
	*translate.Translator
}

// NewTranslator returns a translator composing messages per cfg.
func NewTranslator(cfg sqlerr.Config) *Translator {
	return &Translator{translate.New(cfg, translate.Source{
		Component: Component,
		Records:   Records,
		Origin:    source,
	})}
}

// WithObserver attaches an observer notified after every translation.
func (t *Translator) WithObserver(observer observability.Observer) *Translator {
	t.Translator.WithObserver(observer)
	return t
}

// WithLogger attaches a logger for errors no record could be derived from.
func (t *Translator) WithLogger(logger Logger) *Translator {
	t.Translator.WithLogger(logger)
	return t
}
