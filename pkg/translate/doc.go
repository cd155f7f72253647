// Package translate is the driver-independent half of the postgres, mariadb
// and sqlite adapters.
//
// An adapter supplies a Source: its component name, a function deriving
// diagnostic records from a driver error, and a function naming where those
// records came from. The Translator posts the records to a diagnostic area,
// reads them back through the handle path of a *sqlerr.Factory and reports
// one "translate" operation per failure to its observer.
//
// The factory inside a Translator never has an observer of its own, so a
// translated failure is observed exactly once.
package translate
