// Package ram provides shell commands for bridge RAM access.
package ram

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/fpgabridge/pkg/cli/sh"
)

// Dump is the JSON output of a RAM read.
type Dump struct {
	Address uint32  `json:"address,omitempty"`
	Words   []int16 `json:"words"`
}

func prepare(c *ishell.Context, s *sh.Shell, arg string, write bool) (uint32, bool) {
	addr, err := sh.ParseAddress(arg)
	if err != nil {
		c.Err(err)
		return 0, false
	}
	if _, err = s.Session.PrepareRAMAccess(s.Channels.Ctl, addr, write); err != nil {
		c.Err(err)
		return 0, false
	}
	return addr, true
}

func read(c *ishell.Context, s *sh.Shell, addr uint32, arg string) {
	count, err := sh.ParseCount(arg)
	if err != nil {
		c.Err(err)
		return
	}
	words, _, err := s.Session.ReadRAM(s.Channels.Data, count)
	if err != nil {
		c.Err(err)
		return
	}
	s.Print(c, Dump{Address: addr, Words: words}, sh.FormatWords(addr, words))
}

func write(c *ishell.Context, s *sh.Shell, args []string) {
	words, err := sh.ParseWords(args)
	if err != nil {
		c.Err(err)
		return
	}
	if _, err = s.Session.WriteRAM(s.Channels.Data, words); err != nil {
		c.Err(err)
		return
	}
	c.Printf("%d words written\n", len(words))
}

var (
	// PrepareCmd sets up RAM access without transferring data.
	PrepareCmd = ishell.Cmd{
		Name: "prepare",
		Help: "r|w ADDR: set up RAM access",
		Func: sh.MustBeConnected(func(c *ishell.Context, s *sh.Shell) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("DIRECTION and ADDR required"))
				return
			}
			var writeEnable bool
			switch c.Args[0] {
			case "r", "read":
			case "w", "write":
				writeEnable = true
			default:
				c.Err(fmt.Errorf("invalid DIRECTION %q", c.Args[0]))
				return
			}
			prepare(c, s, c.Args[1], writeEnable)
		}),
	}

	// ReadCmd reads words from the prepared address.
	ReadCmd = ishell.Cmd{
		Name:    "read",
		Aliases: []string{"r"},
		Help:    "COUNT: read words from the prepared address",
		Func: sh.MustBeConnected(func(c *ishell.Context, s *sh.Shell) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("COUNT required"))
				return
			}
			read(c, s, 0, c.Args[0])
		}),
	}

	// WriteCmd writes words to the prepared address.
	WriteCmd = ishell.Cmd{
		Name:    "write",
		Aliases: []string{"w"},
		Help:    "WORD...: write words to the prepared address",
		Func: sh.MustBeConnected(func(c *ishell.Context, s *sh.Shell) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("WORD required"))
				return
			}
			write(c, s, c.Args)
		}),
	}

	// DumpCmd prepares a read and reads words.
	DumpCmd = ishell.Cmd{
		Name: "dump",
		Help: "ADDR COUNT: prepare a read and dump words",
		Func: sh.MustBeConnected(func(c *ishell.Context, s *sh.Shell) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("ADDR and COUNT required"))
				return
			}
			if addr, ok := prepare(c, s, c.Args[0], false); ok {
				read(c, s, addr, c.Args[1])
			}
		}),
	}

	// LoadCmd prepares a write and writes words.
	LoadCmd = ishell.Cmd{
		Name: "load",
		Help: "ADDR WORD...: prepare a write and write words",
		Func: sh.MustBeConnected(func(c *ishell.Context, s *sh.Shell) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("ADDR and WORD required"))
				return
			}
			if _, ok := prepare(c, s, c.Args[0], true); ok {
				write(c, s, c.Args[1:])
			}
		}),
	}

	// BlockSizeCmd shows or sets the RAM block word size.
	BlockSizeCmd = ishell.Cmd{
		Name:    "blocksize",
		Aliases: []string{"bs"},
		Help:    "[WORDS]: show or set the RAM block word size",
		Func: sh.MustBeConnected(func(c *ishell.Context, s *sh.Shell) {
			if len(c.Args) > 0 {
				n, err := strconv.Atoi(c.Args[0])
				if err != nil {
					c.Err(fmt.Errorf("invalid WORDS: %v", err))
					return
				}
				if err = s.Session.SetRAMBlockWordSize(n); err != nil {
					c.Err(err)
					return
				}
			}
			c.Printf("%d words per block\n", s.Session.RAMBlockWordSize())
		}),
	}
)

func init() {
	sh.AddCmds(&PrepareCmd, &ReadCmd, &WriteCmd, &DumpCmd, &LoadCmd, &BlockSizeCmd)
}
