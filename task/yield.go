package task

type verbKind uint8

const (
	verbDone verbKind = iota
	verbYield
	verbSuspend
	verbCaller
	verbSub
	verbSu
	verbTerm
	verbException
)

// Yield is the value a Machine's Step returns, one of the transition
// verbs a task body can emit.
type Yield struct {
	kind verbKind
	next Label

	out Args // CALLER payload

	sub *Instance // SUB target

	machine Machine // SU target, instantiated by the scheduler
	initArg Args

	catch    Label
	hasCatch bool

	exc *Exception
}

// Done marks initialization complete; the task becomes suspended,
// waiting for an external resume.
func Done() Yield { return Yield{kind: verbDone} }

// YieldTo continues at next on the scheduler's next tick.
func YieldTo(next Label) Yield { return Yield{kind: verbYield, next: next} }

// Suspend blocks the task; when resumed, it runs next.
func Suspend(next Label) Yield { return Yield{kind: verbSuspend, next: next} }

// Caller returns out to the suspended caller; on next resume, the
// task itself continues at next.
func Caller(out Args, next Label) Yield { return Yield{kind: verbCaller, out: out, next: next} }

// Sub invokes the already-instantiated sub task with arg; the caller
// suspends until sub reaches a Caller yield, and resumes at next with
// the returned Args as its incoming argument.
func Sub(sub *Instance, arg Args, next Label) Yield {
	sub.pending = arg
	return Yield{kind: verbSub, sub: sub, next: next}
}

// SubCatch is Sub with a CATCH clause: if sub raises an exception
// that reaches this call's frame, the caller resumes at catch instead
// of next, with the Exception as its sole argument.
func SubCatch(sub *Instance, arg Args, next, catch Label) Yield {
	y := Sub(sub, arg, next)
	y.catch = catch
	y.hasCatch = true
	return y
}

// Su instantiates a fresh machine with initArg and sub-calls it, as
// Sub does for a pre-instantiated instance.
func Su(machine Machine, initArg Args, next Label) Yield {
	return Yield{kind: verbSu, machine: machine, initArg: initArg, next: next}
}

// SuCatch is Su with a CATCH clause.
func SuCatch(machine Machine, initArg Args, next, catch Label) Yield {
	y := Su(machine, initArg, next)
	y.catch = catch
	y.hasCatch = true
	return y
}

// Term terminates the task; the scheduler runs its TERM label exactly
// once for cleanup.
func Term() Yield { return Yield{kind: verbTerm} }

// ContinueErr raises a soft "need more data, call me again" exception.
// The raising task itself resumes at next on its next invocation; the
// caller's enclosing CATCH clause (if any) is notified immediately.
func ContinueErr(msg string, data Args, next Label) Yield {
	return Yield{kind: verbException, exc: &Exception{Code: CodeContinue, Msg: msg, Data: data}, next: next}
}

// AbortErr raises a hard exception, unwinding the sub-call chain
// until a CATCH clause is found.
func AbortErr(msg string, data Args) Yield {
	return Yield{kind: verbException, exc: &Exception{Code: CodeAbort, Msg: msg, Data: data}, next: TERM}
}
