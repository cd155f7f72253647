package sqlerr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultRecordSeparator joins records in a composed message.
	DefaultRecordSeparator = "; "

	// DefaultUnknownErrorText is used when a handle carries no diagnostics.
	DefaultUnknownErrorText = "unknown error: the driver did not supply any diagnostics"
)

var (
	// ErrEmptyFormat is reported for a template construction with an empty format.
	ErrEmptyFormat = errors.New("sqlerr: empty message format")

	// ErrFormatMismatch is reported when the format verbs and the arguments disagree.
	ErrFormatMismatch = errors.New("sqlerr: message format does not match its arguments")
)

// MessageComposer turns diagnostic records or a message template into the
// text carried by a constructed error.
type MessageComposer struct {
	separator   string
	unknownText string
}

// NewMessageComposer returns a composer; empty arguments select the defaults.
func NewMessageComposer(separator, unknownText string) MessageComposer {
	if separator == "" {
		separator = DefaultRecordSeparator
	}
	if unknownText == "" {
		unknownText = DefaultUnknownErrorText
	}
	return MessageComposer{separator: separator, unknownText: unknownText}
}

// Records composes the message for the handle path:
//
//	SQLFetch: [01004] Data truncated (0); [HY000] General warning (0)
//
// The function name leads so the failing call is visible to the caller.
// Without records the message names the function and says that the driver
// supplied nothing.
func (c MessageComposer) Records(function string, records []DiagnosticRecord) string {
	var b strings.Builder
	if function != "" {
		b.WriteString(function)
		b.WriteString(": ")
	}
	if len(records) == 0 {
		b.WriteString(c.unknown())
		return b.String()
	}
	for i, rec := range records {
		if i > 0 {
			b.WriteString(c.sep())
		}
		b.WriteByte('[')
		b.WriteString(string(NormalizeSQLState(string(rec.SQLState))))
		b.WriteString("] ")
		b.WriteString(cleanMessage(rec.Message))
		b.WriteString(" (")
		b.WriteString(strconv.FormatInt(int64(rec.NativeCode), 10))
		b.WriteByte(')')
	}
	return b.String()
}

// Template composes the message for the template path:
//
//	[HY000] bad input: oops
func (c MessageComposer) Template(state SQLState, format string, args ...any) string {
	state = NormalizeSQLState(string(state))
	if format == "" {
		return "[" + string(state) + "] " + c.unknown()
	}
	return "[" + string(state) + "] " + fmt.Sprintf(format, args...)
}

func (c MessageComposer) sep() string {
	if c.separator == "" {
		return DefaultRecordSeparator
	}
	return c.separator
}

func (c MessageComposer) unknown() string {
	if c.unknownText == "" {
		return DefaultUnknownErrorText
	}
	return c.unknownText
}

// ComposeRecords is MessageComposer.Records with the default settings.
func ComposeRecords(function string, records []DiagnosticRecord) string {
	return MessageComposer{}.Records(function, records)
}

// ComposeTemplate is MessageComposer.Template with the default settings.
func ComposeTemplate(state SQLState, format string, args ...any) string {
	return MessageComposer{}.Template(state, format, args...)
}

// CheckFormat validates a template before use. It returns ErrEmptyFormat for
// an empty format and ErrFormatMismatch when fmt had to emit a %!verb(...)
// marker (missing, extra or mistyped arguments). Arguments that render a
// marker themselves are not held against the format.
func CheckFormat(format string, args ...any) error {
	if format == "" {
		return ErrEmptyFormat
	}
	out := fmt.Sprintf(format, args...)
	if !strings.Contains(out, "%!") || strings.Contains(format, "%!") {
		return nil
	}
	for _, a := range args {
		if strings.Contains(fmt.Sprint(a), "%!") {
			return nil
		}
	}
	return ErrFormatMismatch
}

// cleanMessage trims the padding drivers leave after a message and replaces
// invalid UTF-8.
func cleanMessage(msg string) string {
	msg = strings.TrimRight(msg, " \t\r\n\x00")
	return strings.ToValidUTF8(msg, "�")
}
