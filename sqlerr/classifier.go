package sqlerr

import (
	"slices"
	"strings"
)

// ClassRule maps a SQLSTATE prefix to a Kind. Prefix is either a full
// 5-character code or a 2-character class.
type ClassRule struct {
	Prefix string
	Kind   Kind
}

// exactRules are checked before classRules. Both tables are read-only.
var exactRules = map[SQLState]Kind{
	"0A000": KindNotSupportedError,
	"40002": KindIntegrityError, // integrity constraint violation detected at commit
	"HYT00": KindOperationalError,
	"HYT01": KindOperationalError,
	"HY001": KindOperationalError,
	"HYC00": KindNotSupportedError,
}

var classRules = map[string]Kind{
	"01": KindWarning,
	"07": KindProgrammingError,
	"08": KindOperationalError,
	"0A": KindNotSupportedError,
	"21": KindDataError,
	"22": KindDataError,
	"23": KindIntegrityError,
	"24": KindProgrammingError,
	"25": KindProgrammingError,
	"26": KindProgrammingError,
	"28": KindProgrammingError,
	"2D": KindProgrammingError,
	"34": KindProgrammingError,
	"3C": KindProgrammingError,
	"3D": KindProgrammingError,
	"3F": KindProgrammingError,
	"40": KindOperationalError,
	"42": KindProgrammingError,
	"44": KindProgrammingError,
	"IM": KindInterfaceError,
	"XX": KindInternalError,
}

// Classify maps a SQLSTATE to its Kind. It never fails: malformed input is
// treated as HY000 and any code without a rule, HY000 included, is KindError.
func Classify(state string) Kind {
	s := NormalizeSQLState(state)
	if k, ok := exactRules[s]; ok {
		return k
	}
	if k, ok := classRules[string(s[:2])]; ok {
		return k
	}
	return KindError
}

// Classes returns a copy of the classification table, exact codes first,
// each group sorted by prefix.
func Classes() []ClassRule {
	rules := make([]ClassRule, 0, len(exactRules)+len(classRules))
	for p, k := range exactRules {
		rules = append(rules, ClassRule{Prefix: string(p), Kind: k})
	}
	sortRules(rules)
	n := len(rules)
	for p, k := range classRules {
		rules = append(rules, ClassRule{Prefix: p, Kind: k})
	}
	sortRules(rules[n:])
	return rules
}

func sortRules(rules []ClassRule) {
	slices.SortFunc(rules, func(a, b ClassRule) int {
		return strings.Compare(a.Prefix, b.Prefix)
	})
}
