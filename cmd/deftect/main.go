// Command deftect analyzes segmentation masks for product defects: it
// selects at most one defect verdict per image, localizes it, and records
// the scan.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
