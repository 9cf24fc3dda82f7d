package main

import (
	"github.com/expotrack/expotrack/internal/cli"
)

func main() {
	cli.Execute()
}
