package backends

// The ambient execution context is kept in an explicit stack with scoped
// push/pop rather than a bare mutable global: Use pushes and returns the pop.
// Execution is single-threaded by design (see package value), so the stack is
// not synchronized.

var contextStack []Context

// Use makes ctx the ambient Context and returns the function restoring the
// previous one. Meant to be used as a scope guard:
//
//	done := backends.Use(ctx)
//	defer done()
func Use(ctx Context) (done func()) {
	contextStack = append(contextStack, ctx)
	return func() {
		contextStack = contextStack[:len(contextStack)-1]
	}
}

// HasCurrent returns whether an ambient Context is established.
func HasCurrent() bool { return len(contextStack) > 0 }

// Current returns the ambient Context. It panics with ErrNoContext if none
// was established: that is an internal-consistency failure of the compilation
// unit, not a recoverable user error.
func Current() Context {
	if len(contextStack) == 0 {
		Raise(ErrNoContext, "no ambient execution context, establish one with backends.Use")
	}
	return contextStack[len(contextStack)-1]
}
