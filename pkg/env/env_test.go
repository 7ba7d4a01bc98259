package env

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/fpgabridge/pkg/channel"
)

func TestOpenLoopback(t *testing.T) {
	conf := NewConfig()
	conf.Device = "loop:"
	chs, err := conf.Open()
	require.NoError(t, err)
	require.IsType(t, &channel.Loopback{}, chs.Ctl)
	require.Equal(t, chs.Ctl, chs.Data)
	require.NoError(t, chs.Close())
	require.False(t, chs.Ctl.IsOpen())

	conf.DataDevice = "loop"
	chs, err = conf.Open()
	require.NoError(t, err)
	require.True(t, chs.Ctl != chs.Data)
	require.NoError(t, chs.Close())
	require.False(t, chs.Data.IsOpen())
}

func TestOpenErrors(t *testing.T) {
	conf := NewConfig()
	conf.Device = ""
	_, err := conf.Open()
	require.Error(t, err)

	conf.Device = "bogus://x"
	_, err = conf.Open()
	require.Error(t, err)

	conf.Device = "loop:"
	conf.DataDevice = "/nonexistent/spidev0.1"
	_, err = conf.Open()
	require.Error(t, err)
}

func TestNewSession(t *testing.T) {
	conf := NewConfig()
	conf.BlockWords = 16
	s, err := conf.NewSession()
	require.NoError(t, err)
	require.Equal(t, 16, s.RAMBlockWordSize())

	conf.BlockWords = 0
	_, err = conf.NewSession()
	require.Error(t, err)
}

func TestWithClientID(t *testing.T) {
	require.Equal(t, "tcp://host:1", withClientID("tcp://host:1"))
	u, err := url.Parse(withClientID("mqtt://broker:1883/lab?name=b0"))
	require.NoError(t, err)
	require.Equal(t, "b0", u.Query().Get("name"))
	require.Contains(t, u.Query().Get("client-id"), "fpgabridge-client-")
	require.Equal(t, "mqtt://broker:1883/lab?client-id=mine", withClientID("mqtt://broker:1883/lab?client-id=mine"))
}
