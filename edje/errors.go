package edje

import (
	"errors"
	"fmt"
)

// errReservedCustomState is returned when a state named "custom" with
// value 0.00 is declared — that pair is reserved and forbidden
// (spec.md §3 State description invariant).
var errReservedCustomState = errors.New(`state name "custom" with value 0.00 is reserved`)

func errDuplicateState(part, name string, value float64) error {
	return fmt.Errorf("part %q: duplicate state (%q, %.2f)", part, name, value)
}

func errContextNotBoxOrTable(part string) error {
	return fmt.Errorf("part %q: item declared on a part that is neither BOX nor TABLE", part)
}

// ErrInheritOnDefault is returned when `inherit` is attempted on a part's
// default state (spec.md §7 Semantic).
var ErrInheritOnDefault = errors.New("inherit used on default description")

// ErrInheritBeforeState is returned when `inherit` is attempted before
// `state` has set the target state's name/value.
var ErrInheritBeforeState = errors.New("inherit used before state")

// ErrTargetBeforeAction is returned when a program's `target` property
// appears before its `action` property.
var ErrTargetBeforeAction = errors.New("program target specified before action")

// ErrMixedScripts is returned when a collection declares both an Embryo
// and a Lua script.
var ErrMixedScripts = errors.New("collection mixes Embryo and Lua scripts")

func errUnresolvedInheritParent(part, name string, value float64) error {
	return fmt.Errorf("part %q: inherit references unknown parent state (%q, %.2f)", part, name, value)
}
