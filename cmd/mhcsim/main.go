// SPDX-License-Identifier: MIT

// Command mhcsim compares residual mixing policies in deep networks.
//
//	mhcsim compare --depth 64 --streams 4 --seed 42
//	mhcsim simulate --policy mhc --format csv
//	mhcsim dial --iterations-list 0,1,5,20
//	mhcsim mix --dim 32 --depth 16
//
// Results go to stdout, logs to stderr.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
