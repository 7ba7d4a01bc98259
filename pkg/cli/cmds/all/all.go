// Package all registers all shell commands.
package all

import (
	// register commands.
	_ "github.com/robotalks/fpgabridge/pkg/cli/cmds/bridge"
	_ "github.com/robotalks/fpgabridge/pkg/cli/cmds/ram"
)
