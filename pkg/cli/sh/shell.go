// Package sh provides the interactive bridge shell.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/fpgabridge/pkg/bridge"
	"github.com/robotalks/fpgabridge/pkg/env"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell    *ishell.Shell
	Config   *env.Config
	Session  *bridge.Session
	Channels *env.Channels
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&OpenCmd,
		&CloseCmd,
		&LastCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// Cmds returns the registered commands.
func Cmds() []*ishell.Cmd {
	return commands
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires open channels.
func MustBeConnected(fn func(c *ishell.Context, s *Shell)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		s := ShellFrom(c)
		if s.Channels == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c, s)
	}
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Connect opens the configured channels and boots the FPGA if a boot file
// is configured.
func (s *Shell) Connect() error {
	session, err := s.Config.NewSession()
	if err != nil {
		return err
	}
	chs, err := s.Config.Open()
	if err != nil {
		return err
	}
	if s.Config.BootFile != "" {
		if _, err = session.BootLoaderFile(chs.Ctl, s.Config.BootFile); err != nil {
			chs.Close()
			return err
		}
	}
	s.Disconnect()
	s.Session, s.Channels = session, chs
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", s.Config.Device))
	return nil
}

// Disconnect closes current channels.
func (s *Shell) Disconnect() {
	if s.Channels != nil {
		s.Channels.Close()
		s.Channels = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Print prints v as JSON in JSON mode, otherwise the text.
func (s *Shell) Print(c *ishell.Context, v interface{}, text string) {
	if s.OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Println(text)
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect {
		if err := s.Connect(); err != nil {
			log.Fatalf("open %q failed: %v", s.Config.Device, err)
		}
		defer s.Disconnect()
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// OpenCmd (re)opens the channels.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[DEVICE [DATA-DEVICE]]: open the bridge channels",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				s.Config.Device = c.Args[0]
				s.Config.DataDevice = ""
			}
			if len(c.Args) > 1 {
				s.Config.DataDevice = c.Args[1]
			}
			if err := s.Connect(); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the channels.
	CloseCmd = ishell.Cmd{
		Name:    "close",
		Aliases: []string{"d"},
		Help:    "close the bridge channels",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// LastCmd prints the bytes of the last transfer.
	LastCmd = ishell.Cmd{
		Name:    "last",
		Aliases: []string{"tx"},
		Help:    "show bytes sent and received by the last operation",
		Func: MustBeConnected(func(c *ishell.Context, s *Shell) {
			tx := s.Session.LastTransaction()
			s.Print(c, tx, fmt.Sprintf("sent: % x\nrecv: % x", tx.Sent, tx.Received))
		}),
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
