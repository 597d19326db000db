package vm

import (
	"fmt"

	"github.com/soypat/tapesdf"
)

// errInternal signals a VM invariant violation (an unrecognized opcode
// reaching the evaluator), never a user input error. It wraps
// tapesdf.ErrInternal, so errors.Is(err, tapesdf.ErrInternal) holds for it.
var errInternal = fmt.Errorf("vm: %w", tapesdf.ErrInternal)
