package simulator

import (
	"bytes"

	"github.com/coinbase/l2node/internal/config"
)

type (
	// OutputStrategy adjusts the output of eth_call for the configured compat mode.
	OutputStrategy interface {
		Apply(output []byte) []byte
	}

	passthroughStrategy struct{}

	openZeppelinStrategy struct{}
)

const errorSelectorOffset = 96

// errorSelector is the selector of Error(string).
var errorSelector = []byte{0x08, 0xc3, 0x79, 0xa0}

func NewOutputStrategy(mode config.CompatMode) OutputStrategy {
	if mode == config.CompatModeOpenZeppelin {
		return openZeppelinStrategy{}
	}

	return passthroughStrategy{}
}

func (passthroughStrategy) Apply(output []byte) []byte {
	return output
}

// Apply drops the leading words when an Error(string) payload is nested at offset 96.
func (openZeppelinStrategy) Apply(output []byte) []byte {
	end := errorSelectorOffset + len(errorSelector)
	if len(output) < end || !bytes.Equal(output[errorSelectorOffset:end], errorSelector) {
		return output
	}

	return output[errorSelectorOffset:]
}
