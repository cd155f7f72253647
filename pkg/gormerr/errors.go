package gormerr

import (
	"errors"

	"github.com/aalemi-dev/odbcerr/sqlerr"
	"gorm.io/gorm"
)

type sentinelRule struct {
	err   error
	state sqlerr.SQLState
}

// sentinelRules maps gorm's sentinel errors to SQLSTATEs. Order matters:
// the first rule matching with errors.Is wins.
var sentinelRules = []sentinelRule{
	{gorm.ErrDuplicatedKey, "23505"},
	{gorm.ErrForeignKeyViolated, "23503"},
	{gorm.ErrRecordNotFound, sqlerr.SQLStateNoData},
	{gorm.ErrInvalidTransaction, sqlerr.SQLStateInvalidTxState},
	{gorm.ErrNotImplemented, sqlerr.SQLStateFeatureNotSupported},
	{gorm.ErrUnsupportedRelation, sqlerr.SQLStateFeatureNotSupported},
	{gorm.ErrDryRunModeUnsupported, sqlerr.SQLStateOptionalFeature},
	{gorm.ErrMissingWhereClause, sqlerr.SQLStateSyntaxError},
	{gorm.ErrPrimaryKeyRequired, sqlerr.SQLStateSyntaxError},
	{gorm.ErrPreloadNotAllowed, sqlerr.SQLStateSyntaxError},
	{gorm.ErrInvalidField, "42S22"},
	{gorm.ErrInvalidData, "22000"},
	{gorm.ErrInvalidValue, "22023"},
	{gorm.ErrEmptySlice, "22023"},
	{gorm.ErrInvalidValueOfLength, "22026"},
	{gorm.ErrModelValueRequired, "HY009"},
	{gorm.ErrInvalidDB, sqlerr.SQLStateConnectionNotOpen},
	{gorm.ErrUnsupportedDriver, sqlerr.SQLStateDriverNotCapable},
}

// Record returns the diagnostic record for the first gorm sentinel found in
// err's chain. The message is err's full text.
func Record(err error) (sqlerr.DiagnosticRecord, bool) {
	if err == nil {
		return sqlerr.DiagnosticRecord{}, false
	}
	for _, r := range sentinelRules {
		if errors.Is(err, r.err) {
			return sqlerr.NewRecord(string(r.state), 0, err.Error()), true
		}
	}
	return sqlerr.DiagnosticRecord{}, false
}

// SQLState returns the SQLSTATE gorm's sentinel maps to, and whether the
// sentinel is known.
func SQLState(sentinel error) (sqlerr.SQLState, bool) {
	for _, r := range sentinelRules {
		if r.err == sentinel {
			return r.state, true
		}
	}
	return "", false
}
