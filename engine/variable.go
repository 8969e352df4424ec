package engine

import (
	"fmt"
)

// Variable is a prolog variable. Its identity is the whole value: a named variable is identified by its name and
// the instance ID it was renamed to, and an anonymous variable by a serial number unique within its VM.
type Variable struct {
	Name string
	ID   int64

	serial int64
}

// NewVariable creates a named variable which is not renamed yet.
func NewVariable(name string) Variable {
	return Variable{Name: name}
}

func (Variable) term() {}

// Anonymous checks if the variable was written as `_`.
func (v Variable) Anonymous() bool {
	return v.serial != 0
}

func (v Variable) String() string {
	switch {
	case v.serial != 0:
		return fmt.Sprintf("_#%d", v.serial)
	case v.ID != 0:
		return fmt.Sprintf("%s#%d", v.Name, v.ID)
	default:
		return v.Name
	}
}

// NewVariable creates a new anonymous variable which never equals to any other variable.
func (vm *VM) NewVariable() Variable {
	vm.anonID++
	return Variable{Name: "_", serial: vm.anonID}
}
