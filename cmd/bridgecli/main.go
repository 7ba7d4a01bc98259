package main

import (
	"github.com/robotalks/fpgabridge/pkg/cli/sh"
	"github.com/robotalks/fpgabridge/pkg/env"

	_ "github.com/robotalks/fpgabridge/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
