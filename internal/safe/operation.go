package safe

import "fmt"

// Operation is the kind of call a Safe performs. Only plain calls are
// supported; delegate calls and contract creation are rejected.
type Operation uint8

const (
	OperationCall Operation = 0
)

func (o Operation) String() string {
	switch o {
	case OperationCall:
		return "call"
	default:
		return fmt.Sprintf("operation(%d)", uint8(o))
	}
}

// Valid reports whether o is a supported operation.
func (o Operation) Valid() bool {
	return o == OperationCall
}
