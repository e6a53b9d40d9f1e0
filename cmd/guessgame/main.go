package main

import (
	"github.com/nkessler/guessgame-go/internal/cli"
)

func main() {
	cli.Execute()
}
