// Command biostream validates, summarizes and converts FASTA and FASTQ files.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
