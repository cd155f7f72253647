package observability

// NoOpObserver ignores every operation. Useful as a default and in tests.
type NoOpObserver struct{}

// ObserveOperation does nothing.
func (n *NoOpObserver) ObserveOperation(ctx OperationContext) {}

// NewNoOpObserver creates a new NoOpObserver.
func NewNoOpObserver() Observer {
	return &NoOpObserver{}
}

// Multi fans an operation out to several observers in order. Nil entries are
// skipped.
type Multi []Observer

// ObserveOperation forwards ctx to every observer.
func (m Multi) ObserveOperation(ctx OperationContext) {
	for _, o := range m {
		if o != nil {
			o.ObserveOperation(ctx)
		}
	}
}
