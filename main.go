package main

import (
	"github.com/charmbracelet/pkcegen/internal/cmd"
)

func main() {
	cmd.Execute()
}
