package main

import (
	"os"

	"github.com/yoockh/orbitmatch/app/matchctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
