package vm

import "errors"

// Errors that end a run. errUnknownInstruction and errIllegalOperation
// are fatal and share the same exit path: diagnostic dump, full resource
// release, exit status 1. errHalted is a successful halt: exit status 0,
// no dump.
var (
	errUnknownInstruction = errors.New("instruction not recognized")
	errIllegalOperation   = errors.New("illegal operation at instruction")
	errHalted             = errors.New("cpu halt requested")
)
