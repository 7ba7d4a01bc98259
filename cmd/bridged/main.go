package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/fpgabridge/pkg/daemon"
	"github.com/robotalks/fpgabridge/pkg/env"
)

func init() {
	env.SetupFlags()
	daemon.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := daemon.NewConfig().Run(env.NewConfig()); err != nil {
		glog.Exit(err)
	}
}
