package simulator

import (
	"context"

	xapi "github.com/coinbase/l2node/internal/api/ethereum"
)

type (
	// Sandbox executes a call request against the state of a sealed block without committing anything.
	// It is provided by the execution engine of the node. When no sandbox is wired,
	// eth_call and eth_estimateGas are reported as not supported.
	Sandbox interface {
		// Execute returns the output of the call. A reverted or out-of-gas execution fails with *ExecutionError.
		Execute(ctx context.Context, block uint64, request *xapi.CallRequest) ([]byte, error)
	}

	// ExecutionError is a failed execution. Data is the revert payload, if any.
	ExecutionError struct {
		Message string
		Data    []byte
	}
)

var _ error = (*ExecutionError)(nil)

func NewExecutionError(message string, data []byte) *ExecutionError {
	return &ExecutionError{
		Message: message,
		Data:    data,
	}
}

func (e *ExecutionError) Error() string {
	return e.Message
}
