package sqlerr

// maxWalkDepth stops Walk on pathological or cyclic Unwrap chains.
const maxWalkDepth = 64

// Walk visits err and every error it wraps, depth-first in wrap order. It
// follows Unwrap() error, Unwrap() []error (errors.Join, fmt.Errorf with
// several %w) and WrappedErrors() []error (go-multierror). Walk stops as soon
// as visit returns false.
func Walk(err error, visit func(error) bool) {
	walk(err, visit, 0)
}

func walk(err error, visit func(error) bool, depth int) bool {
	if err == nil || depth > maxWalkDepth {
		return true
	}
	if !visit(err) {
		return false
	}
	switch x := err.(type) {
	case interface{ WrappedErrors() []error }:
		for _, e := range x.WrappedErrors() {
			if !walk(e, visit, depth+1) {
				return false
			}
		}
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			if !walk(e, visit, depth+1) {
				return false
			}
		}
	case interface{ Unwrap() error }:
		return walk(x.Unwrap(), visit, depth+1)
	}
	return true
}
