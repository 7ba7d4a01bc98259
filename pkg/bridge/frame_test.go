package bridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeCommand(t *testing.T) {
	testCases := []struct {
		name   string
		cmd    Command
		params []byte
		expect Frame
	}{
		{"read version", CmdReadVersion, nil, Frame{0x80, 0, 0, 0, 0}},
		{"read pcb1", CmdReadPcb1, nil, Frame{0x81, 0, 0, 0, 0}},
		{"read pcb2", CmdReadPcb2, []byte{1}, Frame{0x82, 1, 0, 0, 0}},
		{"read device", CmdReadDevice, []byte{1, 2, 3, 4}, Frame{0x83, 1, 2, 3, 4}},
		{"setup ram", CmdSetupRAMAccess, []byte{0x80, 0, 0x10, 0}, Frame{0x10, 0x80, 0, 0x10, 0}},
		{"extra params", CmdSetupRAMAccess, []byte{1, 2, 3, 4, 5, 6}, Frame{0x10, 1, 2, 3, 4}},
		{"unknown write", Command(0x22), []byte{9, 9}, Frame{0x22, 9, 9, 0, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := EncodeCommand(tc.cmd, tc.params)
			require.Equal(t, tc.expect, f)
			require.Len(t, f.Bytes(), FrameLen)
		})
	}
}

func TestEncodeCommandReadFlag(t *testing.T) {
	for c := 0; c < 0x80; c++ {
		cmd := Command(c)
		f := EncodeCommand(cmd, nil)
		require.Len(t, f.Bytes(), FrameLen)
		require.Equalf(t, cmd.IsRead(), f.Opcode()&0x80 != 0, "%s", cmd)
		require.Equal(t, byte(c), f.Opcode()&0x7f)
	}
}

func TestDecodeResponse(t *testing.T) {
	f, err := DecodeResponse([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Equal(t, byte(1), f.Opcode())
	require.Equal(t, []byte{2, 3, 4, 5}, f.Params())

	for _, b := range [][]byte{nil, {1, 2, 3, 4}, {1, 2, 3, 4, 5, 6}} {
		_, err := DecodeResponse(b)
		require.True(t, errors.Is(err, ErrIncomplete))
		var frameErr *FrameError
		require.True(t, errors.As(err, &frameErr))
		require.Equal(t, len(b), frameErr.Len)
	}
}

func TestCommandString(t *testing.T) {
	require.Equal(t, "read-version", CmdReadVersion.String())
	require.Equal(t, "setup-ram-access", CmdSetupRAMAccess.String())
	require.Equal(t, "cmd-0x42", Command(0x42).String())
}
