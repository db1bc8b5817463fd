package main

import (
	"os"

	"github.com/RunZER0/bar-exam-prep-sub003/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
