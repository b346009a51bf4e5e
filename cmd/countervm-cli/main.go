// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "countervm-cli" deploys the counter contract into a local ledger sandbox
// and sends it messages.
package main

import (
	"os"

	"github.com/ava-labs/countervm/cmd/countervm-cli/cmd"
	"github.com/ava-labs/countervm/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.Outf("{{red}}countervm-cli exited with error:{{/}} %+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
