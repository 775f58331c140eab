package edje

import "edjecc/common"

// ProgramAPI is the optional (name, description) hint exposed to external
// tooling for a program.
type ProgramAPI struct {
	Name        string
	Description string
}

// ProgramAction is the variant action a Program performs; exactly one
// branch is meaningful, selected by Kind.
type ProgramAction struct {
	Kind common.ProgramActionKind

	StateName  string
	StateValue float64

	SignalName   string
	SignalSource string

	DragX, DragY   float64
	DragPage1, DragPage2 float64

	ScriptRef *Script

	ParamCopySrcPart, ParamCopySrcParam string
	ParamCopyDstPart, ParamCopyDstParam string
	ParamCopySrcPartID, ParamCopyDstPartID PartID

	ParamSetPart, ParamSetParam, ParamSetValue string
	ParamSetPartID PartID
}

// Program is a triggered action within a collection: a unique name, dense
// id, trigger pattern, optional state filter, delay, a variant action,
// transition, ordered by-name targets (kind depends on Action.Kind), and
// an ordered `after` list of program references run on completion.
type Program struct {
	Name string
	ID   int

	Signal string
	Source string

	FilterPart   string
	FilterState  string
	FilterPartID PartID

	DelayFrom, DelayRange float64

	haveAction bool
	Action     ProgramAction

	Transition         common.Transition
	TransitionDuration float64

	// Targets' referent kind (part vs program) depends on Action.Kind.
	Targets   []string
	TargetIDs []int

	After   []string
	AfterIDs []ProgramID

	API *ProgramAPI
}

// SetAction assigns the program's action. Must be called before any call
// to AddTarget (spec.md §3 Program invariant: "target is rejected before
// action is set").
func (p *Program) SetAction(a ProgramAction) {
	p.Action = a
	p.haveAction = true
}

// AddTarget appends a by-name target reference. Returns ErrTargetBeforeAction
// if the program's action has not been set yet.
func (p *Program) AddTarget(name string) error {
	if !p.haveAction {
		return ErrTargetBeforeAction
	}
	p.Targets = append(p.Targets, name)
	p.TargetIDs = append(p.TargetIDs, Unset)
	return nil
}

// TargetKind reports whether this program's targets reference parts or
// other programs, based on its action kind (spec.md §3 Program).
func (p *Program) TargetKind() common.TargetKind {
	switch p.Action.Kind {
	case common.ActionStop:
		return common.TargetProgram
	default:
		return common.TargetPart
	}
}

// AddAfter appends an `after` program-name reference, resolved once the
// enclosing collection finishes parsing.
func (p *Program) AddAfter(name string) {
	p.After = append(p.After, name)
	p.AfterIDs = append(p.AfterIDs, UnsetProgram)
}
