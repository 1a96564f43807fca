// pgnview replays PGN games into verified board positions, from the
// command line or as an HTTP service.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.LookupEnv).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pgnview:", err)
		os.Exit(1)
	}
}
