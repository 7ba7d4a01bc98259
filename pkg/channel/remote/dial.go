package remote

import (
	"fmt"
	"net"
	"net/url"

	"github.com/robotalks/fpgabridge/pkg/comm"
	"github.com/robotalks/fpgabridge/pkg/comm/mqtt"
	"github.com/robotalks/fpgabridge/pkg/comm/stream"
	"github.com/robotalks/fpgabridge/pkg/comm/websocket"
)

// DefaultName is the MQTT topic name of a bridge when none is given.
const DefaultName = "bridge"

// Dial connects to a bridge daemon. Supported URLs:
//
//	tcp://host:port
//	ws://host:port/path, wss://host:port/path
//	mqtt://[user:pass@]broker:port/prefix?name=bridge&client-id=id
func Dial(rawURL string) (*Channel, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote URL: %v", err)
	}
	var conn comm.PacketConn
	switch u.Scheme {
	case "tcp":
		c, err := net.Dial("tcp", u.Host)
		if err != nil {
			return nil, err
		}
		conn = stream.New(c)
	case "ws", "wss":
		origin := "http://localhost/"
		if u.Scheme == "wss" {
			origin = "https://localhost/"
		}
		if conn, err = websocket.Dial(rawURL, origin); err != nil {
			return nil, err
		}
	case "mqtt", "ssl", "tls":
		if conn, err = dialMQTT(u); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown remote URL scheme: %q", u.Scheme)
	}
	return NewChannel(conn), nil
}

func dialMQTT(u *url.URL) (comm.PacketConn, error) {
	name := u.Query().Get("name")
	if name == "" {
		name = DefaultName
	}
	opts, prefix, err := mqtt.ClientOptionsFromURL(u.String())
	if err != nil {
		return nil, err
	}
	q := mqtt.NewQueue(opts, prefix)
	if err := q.Connect(); err != nil {
		return nil, err
	}
	rw := mqtt.NewPacketReadWriter(q).ForClient(name)
	if err := rw.Start(); err != nil {
		q.Close()
		return nil, err
	}
	return &mqttConn{ReadWriter: rw}, nil
}

type mqttConn struct {
	*mqtt.ReadWriter
}

func (c *mqttConn) Close() error {
	err := c.ReadWriter.Close()
	c.Queue.Close()
	return err
}
