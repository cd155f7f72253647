package sqlerr

import "strings"

// SQLState is a 5-character SQLSTATE code. The first two characters are the
// class, the remaining three the subclass:
//
//	01 = Warning
//	07 = Dynamic SQL error
//	08 = Connection exception
//	22 = Data exception
//	23 = Integrity constraint violation
//	24 = Invalid cursor state
//	25 = Invalid transaction state
//	28 = Invalid authorization specification
//	40 = Transaction rollback
//	42 = Syntax error or access rule violation
//	HY = CLI-specific condition (ODBC)
//	IM = Driver manager (ODBC)
type SQLState string

// Well-known SQLSTATE codes.
const (
	SQLStateWarning            SQLState = "01000"
	SQLStateDataTruncated      SQLState = "01004"
	SQLStateOptionValueChanged SQLState = "01S02"

	SQLStateCountFieldIncorrect SQLState = "07002"
	SQLStateInvalidDescIndex    SQLState = "07009"

	SQLStateUnableToConnect   SQLState = "08001"
	SQLStateConnectionNotOpen SQLState = "08003"
	SQLStateConnectionFailure SQLState = "08006"
	SQLStateCommLinkFailure   SQLState = "08S01"

	SQLStateFeatureNotSupported SQLState = "0A000"
	SQLStateNoData              SQLState = "02000"

	SQLStateStringTruncated   SQLState = "22001"
	SQLStateNumericOverflow   SQLState = "22003"
	SQLStateDivisionByZero    SQLState = "22012"
	SQLStateIntegrity         SQLState = "23000"
	SQLStateInvalidCursor     SQLState = "24000"
	SQLStateInvalidTxState    SQLState = "25000"
	SQLStateInvalidAuthSpec   SQLState = "28000"
	SQLStateSerialization     SQLState = "40001"
	SQLStateIntegrityOnCommit SQLState = "40002"
	SQLStateStatementUnknown  SQLState = "40003"
	SQLStateDeadlock          SQLState = "40P01"
	SQLStateSyntaxError       SQLState = "42000"
	SQLStateTableNotFound     SQLState = "42S02"

	SQLStateGeneralError      SQLState = "HY000"
	SQLStateMemoryAlloc       SQLState = "HY001"
	SQLStateOperationCanceled SQLState = "HY008"
	SQLStateFunctionSequence  SQLState = "HY010"
	SQLStateOptionalFeature   SQLState = "HYC00"
	SQLStateTimeout           SQLState = "HYT00"
	SQLStateConnectTimeout    SQLState = "HYT01"

	SQLStateDriverNotFound   SQLState = "IM002"
	SQLStateDriverNotCapable SQLState = "IM001"
)

// DefaultSQLState is substituted wherever a SQLSTATE is absent or malformed.
const DefaultSQLState = SQLStateGeneralError

// NormalizeSQLState uppercases s and returns DefaultSQLState when s is not
// exactly five ASCII letters or digits.
func NormalizeSQLState(s string) SQLState {
	if !wellFormed(s) {
		return DefaultSQLState
	}
	return SQLState(strings.ToUpper(s))
}

// Valid reports whether s is a well-formed SQLSTATE.
func (s SQLState) Valid() bool {
	return wellFormed(string(s))
}

// Class returns the two-character class of s after normalization.
func (s SQLState) Class() string {
	return string(NormalizeSQLState(string(s))[:2])
}

// Equal compares s and other case-insensitively. Both must be well-formed;
// a malformed code never matches, not even itself.
func (s SQLState) Equal(other string) bool {
	return wellFormed(string(s)) && wellFormed(other) && strings.EqualFold(string(s), other)
}

func (s SQLState) String() string {
	return string(s)
}

func wellFormed(s string) bool {
	if len(s) != 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		default:
			return false
		}
	}
	return true
}
