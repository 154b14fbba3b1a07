package main

import (
	"testing"

	"github.com/coinbase/l2node/internal/utils/testutil"
)

func TestCommandTree(t *testing.T) {
	require := testutil.Require(t)

	for _, name := range []string{"block-number", "gas-price", "syncing", "send-raw-tx", "logs"} {
		command, args, err := rootCommand.Find([]string{"node", name})
		require.NoError(err)
		require.Empty(args)
		require.Equal(name, command.Name())
	}
}

func TestSendRawTxRequiresRaw(t *testing.T) {
	require := testutil.Require(t)

	flag := sendRawTxCommand.PersistentFlags().Lookup("raw")
	require.NotNil(flag)
	require.Equal([]string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"])
}
