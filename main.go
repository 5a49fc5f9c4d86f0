package main

import (
	"os"

	"eadkc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
