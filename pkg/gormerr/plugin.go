package gormerr

import (
	"errors"

	"github.com/aalemi-dev/odbcerr/sqlerr"
	"gorm.io/gorm"
)

// TranslateFunc turns the error of a failed gorm call into a classified error.
type TranslateFunc func(function string, err error) error

// Plugin is a gorm plugin that replaces db.Error after every create, query,
// update, delete, row and raw call with the result of a TranslateFunc.
// Errors that already carry a *sqlerr.Error are left alone.
//
// Open the database with gorm.Config{TranslateError: false}: gorm's own
// translation replaces driver errors with sentinels and drops the SQLSTATE.
type Plugin struct {
	name      string
	translate TranslateFunc
}

// NewPlugin returns a plugin registered under name.
func NewPlugin(name string, translate TranslateFunc) *Plugin {
	return &Plugin{name: name, translate: translate}
}

// Name implements gorm.Plugin.
func (p *Plugin) Name() string {
	return p.name
}

// Initialize implements gorm.Plugin.
func (p *Plugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().After("gorm:create").Register(p.name+":create", p.Callback("Create")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register(p.name+":query", p.Callback("Query")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register(p.name+":update", p.Callback("Update")); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register(p.name+":delete", p.Callback("Delete")); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register(p.name+":row", p.Callback("Row")); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register(p.name+":raw", p.Callback("Raw"))
}

// Callback returns the gorm callback translating errors of operation.
// The function name passed to the TranslateFunc is the operation, followed
// by the statement's table in parentheses when known.
func (p *Plugin) Callback(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db == nil || db.Error == nil || p.translate == nil {
			return
		}
		var classified *sqlerr.Error
		if errors.As(db.Error, &classified) {
			return
		}
		function := operation
		if db.Statement != nil && db.Statement.Table != "" {
			function += "(" + db.Statement.Table + ")"
		}
		db.Error = p.translate(function, db.Error)
	}
}
