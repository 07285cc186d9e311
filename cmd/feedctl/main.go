// Command feedctl runs one aggregation cycle from the terminal and prints
// the merged items and the failure report.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
