package openflow13

import "fmt"

// UnknownAction is returned when an action's type field is not one of
// the OFPAT13_* variants this codec recognizes.
type UnknownAction struct {
	Type uint16
}

func (e *UnknownAction) Error() string {
	return fmt.Sprintf("unknown action type: %d", e.Type)
}

// UnknownInstruction is returned when an instruction's type field is not
// one of the OFPIT13_* variants this codec recognizes.
type UnknownInstruction struct {
	Type uint16
}

func (e *UnknownInstruction) Error() string {
	return fmt.Sprintf("unknown instruction type: %d", e.Type)
}

// UnknownTableFeatureProp is returned when a table-feature property's
// type field is not one of the OFPTFPT13_* variants this codec
// recognizes.
type UnknownTableFeatureProp struct {
	Type uint16
}

func (e *UnknownTableFeatureProp) Error() string {
	return fmt.Sprintf("unknown table feature property type: %d", e.Type)
}
