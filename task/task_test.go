package task

import "testing"

// echoMachine suspends at INIT; when invoked, it returns the argument
// it was invoked with, doubled, to its caller, then waits to be
// terminated.
type echoMachine struct {
	termed bool
}

func (m *echoMachine) Step(label Label, in Args) Yield {
	switch label {
	case INIT:
		return Suspend("ECHO")
	case "ECHO":
		n := in.Int(0)
		return Caller(Args{n * 2}, "WAIT")
	case "WAIT":
		return Suspend("WAIT")
	case TERM:
		m.termed = true
		return Term()
	}
	panic("unreachable")
}

// callerMachine sub-calls an echoMachine and records what it got back.
type callerMachine struct {
	sub    *Instance
	result int
	done   bool
}

func (m *callerMachine) Step(label Label, in Args) Yield {
	switch label {
	case INIT:
		return Sub(m.sub, Args{21}, "GOT")
	case "GOT":
		m.result = in.Int(0)
		m.done = true
		return Term()
	case TERM:
		return Term()
	}
	panic("unreachable")
}

func TestSubCallDeliversResult(t *testing.T) {
	s := New()
	echo := &echoMachine{}
	echoInst := s.Spawn(echo, nil)

	caller := &callerMachine{sub: echoInst}
	s.Spawn(caller, nil)

	if r := s.Run(100); r != ResultStop {
		t.Fatalf("Run = %v, want ResultStop", r)
	}
	if !caller.done || caller.result != 42 {
		t.Fatalf("caller.result = %d, done=%v, want 42,true", caller.result, caller.done)
	}
}

// starvedMachine raises CONTINUE once, then succeeds on retry.
type starvedMachine struct {
	tries int
}

func (m *starvedMachine) Step(label Label, in Args) Yield {
	switch label {
	case INIT:
		return YieldTo("WORK")
	case "WORK":
		m.tries++
		if m.tries == 1 {
			return ContinueErr("need more input", nil, "WORK")
		}
		return Caller(Args{m.tries}, TERM)
	case TERM:
		return Term()
	}
	panic("unreachable")
}

type catchingCaller struct {
	sub      *Instance
	caught   bool
	gotValue int
}

func (m *catchingCaller) Step(label Label, in Args) Yield {
	switch label {
	case INIT:
		return SubCatch(m.sub, nil, "GOT", "RETRY")
	case "RETRY":
		if exc := in.Err(0); exc == nil || exc.Code != CodeContinue {
			panic("expected a CodeContinue exception")
		}
		return Sub(m.sub, nil, "GOT")
	case "GOT":
		m.gotValue = in.Int(0)
		return Term()
	case TERM:
		return Term()
	}
	panic("unreachable")
}

func TestContinueExceptionReachesCatch(t *testing.T) {
	s := New()
	worker := &starvedMachine{}
	workerInst := s.Spawn(worker, nil)

	caller := &catchingCaller{sub: workerInst}
	s.Spawn(caller, nil)

	s.Run(100)

	if caller.gotValue != 2 {
		t.Fatalf("gotValue = %d, want 2 (succeeded on second try)", caller.gotValue)
	}
}

// abortingMachine raises ABORT unconditionally.
type abortingMachine struct{}

func (abortingMachine) Step(label Label, in Args) Yield {
	switch label {
	case INIT:
		return Suspend("WORK")
	case "WORK":
		return AbortErr("boom", nil)
	case TERM:
		return Term()
	}
	panic("unreachable")
}

func TestAbortUnwindsToCatch(t *testing.T) {
	s := New()
	bad := s.Spawn(abortingMachine{}, nil)

	caught := false
	catcher := machineFunc(func(label Label, in Args) Yield {
		switch label {
		case INIT:
			return SubCatch(bad, nil, "GOT", "CAUGHT")
		case "CAUGHT":
			caught = true
			return Term()
		case TERM:
			return Term()
		}
		panic("unreachable")
	})
	s.Spawn(catcher, nil)

	s.Run(100)

	if !caught {
		t.Fatalf("expected ABORT to be delivered to CATCH label")
	}
	if !bad.Terminated() {
		t.Fatalf("expected aborting sub-task to be terminated")
	}
}

func TestCloseVMTerminatesEveryTaskOnce(t *testing.T) {
	s := New()
	m := &echoMachine{}
	inst := s.Spawn(m, nil)
	s.Resume(inst, Args{1})
	s.Run(10)

	s.CloseVM()
	if !m.termed {
		t.Fatalf("expected TERM to run on CloseVM")
	}
	s.CloseVM() // idempotent: must not panic or re-run TERM
}

// machineFunc adapts a plain function to the Machine interface.
type machineFunc func(label Label, in Args) Yield

func (f machineFunc) Step(label Label, in Args) Yield { return f(label, in) }
