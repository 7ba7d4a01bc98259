// Package bridge provides shell commands for bridge commands and boot.
package bridge

import (
	"fmt"

	"github.com/abiosoft/ishell"

	fb "github.com/robotalks/fpgabridge/pkg/bridge"
	"github.com/robotalks/fpgabridge/pkg/cli/sh"
)

// Response is the JSON output of a read command.
type Response struct {
	Command string `json:"command"`
	Data    []byte `json:"data"`
}

func readCmd(name string, cmd fb.Command, help string) ishell.Cmd {
	return ishell.Cmd{
		Name: name,
		Help: help,
		Func: sh.MustBeConnected(func(c *ishell.Context, s *sh.Shell) {
			execCommand(c, s, cmd, nil)
		}),
	}
}

func execCommand(c *ishell.Context, s *sh.Shell, cmd fb.Command, params []byte) {
	resp, _, err := s.Session.ExecCommand(s.Channels.Ctl, cmd, params)
	if err != nil {
		c.Err(err)
		return
	}
	if resp == nil {
		s.Print(c, Response{Command: cmd.String()}, "OK")
		return
	}
	s.Print(c, Response{Command: cmd.String(), Data: resp}, fmt.Sprintf("%s: % x", cmd, resp))
}

var (
	// VersionCmd reads the bridge version.
	VersionCmd = readCmd("version", fb.CmdReadVersion, "read the bridge version")
	// Pcb1Cmd reads PCB1 identification.
	Pcb1Cmd = readCmd("pcb1", fb.CmdReadPcb1, "read PCB1 identification")
	// Pcb2Cmd reads PCB2 identification.
	Pcb2Cmd = readCmd("pcb2", fb.CmdReadPcb2, "read PCB2 identification")
	// DeviceCmd reads device identification.
	DeviceCmd = readCmd("device", fb.CmdReadDevice, "read device identification")

	// ExecCmd sends a raw command.
	ExecCmd = ishell.Cmd{
		Name:    "exec",
		Aliases: []string{"x"},
		Help:    "OPCODE [PARAM...]: send a raw command frame",
		Func: sh.MustBeConnected(func(c *ishell.Context, s *sh.Shell) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("OPCODE required"))
				return
			}
			b, err := sh.ParseBytes(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			execCommand(c, s, fb.Command(b[0]), b[1:])
		}),
	}

	// BootCmd loads an FPGA bitstream.
	BootCmd = ishell.Cmd{
		Name: "boot",
		Help: "FILE: load an FPGA bitstream",
		Func: sh.MustBeConnected(func(c *ishell.Context, s *sh.Shell) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("FILE required"))
				return
			}
			tx, err := s.Session.BootLoaderFile(s.Channels.Ctl, c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("%d bytes sent\n", len(tx.Sent))
		}),
	}
)

func init() {
	sh.AddCmds(&VersionCmd, &Pcb1Cmd, &Pcb2Cmd, &DeviceCmd, &ExecCmd, &BootCmd)
}
