package main

import (
	"github.com/futureready-labs/futureready-kb/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
