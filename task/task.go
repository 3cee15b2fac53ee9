// Package task implements a single-threaded, cooperative, non-
// preemptive scheduler of resumable state-machine tasks.
//
// A task is any Machine: a deterministic state function from (current
// label, incoming arguments) to a Yield verb. Two labels are
// reserved: INIT fires once at task creation, TERM fires exactly once
// at termination, including when a task dies from an uncaught
// exception. Tasks exchange Args tuples across sub-calls and raise
// structured CONTINUE/ABORT exceptions instead of returning errors
// directly.
package task

// Label names a task's current state. INIT and TERM are reserved.
type Label string

const (
	INIT Label = "INIT"
	TERM Label = "TERM"
)

// Args is the typed argument tuple passed into a Step and returned
// from a CALLER yield. Positions and types are a contract between a
// task family and its callers, documented at the call site rather
// than validated by a descriptor string.
type Args []any

// Machine is a resumable task: Step runs the body for the current
// label with the incoming arguments and returns a yield verb.
type Machine interface {
	Step(label Label, in Args) Yield
}

// Instance is a live, scheduled occurrence of a Machine.
type Instance struct {
	id        uint64
	machine   Machine
	label     Label
	pending   Args
	suspended bool
	terminated bool

	// sub-call linkage: set while this instance is suspended waiting
	// for a SUB/SU callee to reach CALLER.
	parent     *Instance
	retLabel   Label
	catchLabel Label
	hasCatch   bool
}

// Terminated reports whether the instance has run its TERM label.
func (inst *Instance) Terminated() bool { return inst.terminated }

// RunResult is returned by Scheduler.Run to describe why it stopped.
type RunResult uint8

const (
	ResultStop RunResult = iota
	ResultAgain
	ResultException
)

// Scheduler runs a set of task Instances to completion, strictly
// single-threaded and cooperative: a task only ever suspends at an
// explicit SUSPEND or CONTINUE yield.
type Scheduler struct {
	queue  []*Instance
	all    []*Instance
	nextID uint64

	lastException bool
}

// New returns an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Spawn instantiates m, running its INIT label synchronously, and
// returns the new Instance. INIT fires exactly once, here, at
// creation time.
func (s *Scheduler) Spawn(m Machine, initArg Args) *Instance {
	s.nextID++
	inst := &Instance{id: s.nextID, machine: m, label: INIT, pending: initArg}
	s.all = append(s.all, inst)
	s.dispatch(inst)
	return inst
}

// Resume wakes a suspended instance with in as its next input,
// queuing it to run on the next Run call. The sole external
// suspension sites in the core are a connection task's READ/SEND
// states and the fetcher's CONTINUE-driven starvation.
func (s *Scheduler) Resume(inst *Instance, in Args) {
	if inst.terminated || !inst.suspended {
		return
	}
	inst.suspended = false
	inst.pending = in
	s.queue = append(s.queue, inst)
}

// Run dequeues and advances up to budget runnable tasks, one Step
// call per task per tick, returning why it stopped.
func (s *Scheduler) Run(budget int) RunResult {
	s.lastException = false

	ran := 0
	for ran < budget {
		if len(s.queue) == 0 {
			return ResultStop
		}

		inst := s.queue[0]
		s.queue = s.queue[1:]

		if inst.terminated {
			continue
		}

		s.dispatch(inst)
		ran++

		if s.lastException {
			return ResultException
		}
	}

	if len(s.queue) > 0 {
		return ResultAgain
	}
	return ResultStop
}

// CloseVM posts a termination request to every live task: each
// task's TERM label runs exactly once, including tasks that are
// currently suspended. Tasks must be TERM-idempotent against
// partially initialized state.
func (s *Scheduler) CloseVM() {
	for _, inst := range s.all {
		s.terminate(inst)
	}
	s.queue = nil
}

func (s *Scheduler) terminate(inst *Instance) {
	if inst.terminated {
		return
	}
	inst.terminated = true
	inst.suspended = false
	inst.machine.Step(TERM, nil)
}

// dispatch runs exactly one Step on inst and interprets the returned
// Yield, mutating scheduler state (queue, sub-call linkage,
// termination) accordingly.
func (s *Scheduler) dispatch(inst *Instance) {
	y := inst.machine.Step(inst.label, inst.pending)
	inst.pending = nil

	switch y.kind {
	case verbDone:
		inst.suspended = true

	case verbYield:
		inst.label = y.next
		s.queue = append(s.queue, inst)

	case verbSuspend:
		inst.label = y.next
		inst.suspended = true

	case verbCaller:
		inst.label = y.next
		inst.suspended = true
		parent := inst.parent
		inst.parent = nil
		if parent != nil {
			parent.pending = y.out
			parent.label = parent.retLabel
			parent.suspended = false
			s.queue = append(s.queue, parent)
		}

	case verbSub:
		sub := y.sub
		sub.parent = inst
		inst.retLabel = y.next
		inst.catchLabel = y.catch
		inst.hasCatch = y.hasCatch
		inst.suspended = true
		// Sub targets a task waiting at some label; wake it exactly
		// once even if it happens to already be queued (e.g. a task
		// sub-calling a peer that hasn't reached its own suspend yet).
		if sub.suspended {
			sub.suspended = false
			s.queue = append(s.queue, sub)
		}

	case verbSu:
		sub := s.spawnRaw(y.machine, y.initArg)
		if sub.terminated {
			// the fresh subtask ran to completion during INIT without
			// reaching CALLER: nothing further to link.
			return
		}
		sub.parent = inst
		inst.retLabel = y.next
		inst.catchLabel = y.catch
		inst.hasCatch = y.hasCatch
		inst.suspended = true
		// no queue append here: a fresh instance whose INIT left it
		// runnable was already queued by that YieldTo, and one left
		// suspended is waiting on its own sub-call or an explicit resume.

	case verbTerm:
		s.terminate(inst)

	case verbException:
		s.propagateException(inst, y.exc, y.next)
	}
}

func (s *Scheduler) spawnRaw(m Machine, initArg Args) *Instance {
	s.nextID++
	inst := &Instance{id: s.nextID, machine: m, label: INIT, pending: initArg}
	s.all = append(s.all, inst)
	s.dispatch(inst)
	return inst
}

// propagateException implements the two exception kinds. CONTINUE
// parks the raiser at next, suspended, and climbs the parent chain
// looking for a CATCH clause without disturbing any frame along the
// way — intermediate sub-callers that installed no CATCH for it have
// no means to supply more input, so they are simply skipped; only the
// frame that actually owns the resource the raiser was starved on
// (the connection, which owns the fetcher's input) can usefully act,
// and it resumes the raiser directly once it has. ABORT unwinds the
// sub-call chain, terminating every frame it passes through, until a
// CATCH clause is found or the chain is exhausted.
func (s *Scheduler) propagateException(inst *Instance, exc *Exception, next Label) {
	if exc.Code == CodeContinue {
		inst.label = next
		inst.suspended = true

		for parent := inst.parent; parent != nil; parent = parent.parent {
			if parent.hasCatch {
				parent.label = parent.catchLabel
				parent.pending = Args{exc}
				parent.suspended = false
				s.queue = append(s.queue, parent)
				return
			}
		}
		// uncaught anywhere in the chain: no frame will ever retry the
		// raiser. Treat as a hard failure of the whole chain.
		s.propagateException(inst, &Exception{Code: CodeAbort, Msg: exc.Msg, Data: exc.Data}, TERM)
		return
	}

	parent := inst.parent
	s.terminate(inst)

	for parent != nil {
		if parent.hasCatch {
			parent.label = parent.catchLabel
			parent.pending = Args{exc}
			parent.suspended = false
			s.queue = append(s.queue, parent)
			return
		}
		grandparent := parent.parent
		s.terminate(parent)
		parent = grandparent
	}

	// uncaught at the top of the sub-call chain.
	s.lastException = true
}
