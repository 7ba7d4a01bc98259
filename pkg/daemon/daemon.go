// Package daemon serves a local bridge channel to remote clients.
package daemon

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/golang/glog"

	"github.com/robotalks/fpgabridge/pkg/channel/remote"
	"github.com/robotalks/fpgabridge/pkg/comm/mqtt"
	"github.com/robotalks/fpgabridge/pkg/env"
	fx "github.com/robotalks/fpgabridge/pkg/framework"
)

// Config configures the listeners of the daemon.
type Config struct {
	// Listen is the TCP address for stream clients, e.g. :7420.
	Listen string
	// HTTPListen is the address serving websocket clients on WSPath.
	HTTPListen  string
	WSPath      string
	MetricsPath string
	// MQTTURL is the broker to serve on, e.g. mqtt://localhost:1883/lab/.
	MQTTURL string
	// Name is the MQTT topic name of this bridge.
	Name string
	// RateLimit caps transfers per second, 0 is unlimited.
	RateLimit float64

	tcpAddr net.Addr
}

var defaultConfig = Config{
	Listen:      ":7420",
	WSPath:      "/bridge",
	MetricsPath: "/metrics",
	Name:        remote.DefaultName,
}

// ErrNoListener indicates nothing is configured to serve.
var ErrNoListener = errors.New("no listener configured")

func init() {
	if val := os.Getenv("BRIDGE_LISTEN"); val != "" {
		defaultConfig.Listen = val
	}
	if val := os.Getenv("BRIDGE_HTTP_LISTEN"); val != "" {
		defaultConfig.HTTPListen = val
	}
	if val := os.Getenv("BRIDGE_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
	if val := os.Getenv("BRIDGE_NAME"); val != "" {
		defaultConfig.Name = val
	}
	if val, err := strconv.ParseFloat(os.Getenv("BRIDGE_RATE_LIMIT"), 64); err == nil {
		defaultConfig.RateLimit = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Listen, "listen", defaultConfig.Listen, "TCP listen address, empty to disable.")
	flag.StringVar(&defaultConfig.HTTPListen, "http", defaultConfig.HTTPListen, "HTTP listen address for websocket clients.")
	flag.StringVar(&defaultConfig.WSPath, "ws-path", defaultConfig.WSPath, "Websocket path.")
	flag.StringVar(&defaultConfig.MetricsPath, "metrics-path", defaultConfig.MetricsPath, "Prometheus metrics path, empty to disable.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL.")
	flag.StringVar(&defaultConfig.Name, "name", defaultConfig.Name, "Bridge name on MQTT.")
	flag.Float64Var(&defaultConfig.RateLimit, "rate-limit", defaultConfig.RateLimit, "Max transfers per second, 0 for unlimited.")
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// TCPAddr returns the bound TCP address after Runnables.
func (c *Config) TCPAddr() net.Addr {
	return c.tcpAddr
}

// Runnables creates the listeners serving srv.
func (c *Config) Runnables(srv *remote.Server) ([]fx.Runnable, error) {
	var runnables []fx.Runnable
	if c.Listen != "" {
		l, err := net.Listen("tcp", c.Listen)
		if err != nil {
			return nil, err
		}
		c.tcpAddr = l.Addr()
		glog.Infof("listening on %s", l.Addr())
		runnables = append(runnables, fx.NamedRun("tcp", fx.RunFunc(func(ctx context.Context) error {
			return srv.ServeListener(ctx, l)
		})))
	}
	if c.HTTPListen != "" {
		mux := http.NewServeMux()
		if c.MetricsPath != "" {
			reg := remote.NewRegistry()
			srv.Metrics = remote.NewMetrics(reg)
			mux.Handle(c.MetricsPath, remote.MetricsHandler(reg))
		}
		httpSrv := &http.Server{Addr: c.HTTPListen, Handler: mux}
		runnables = append(runnables, fx.NamedRun("http", fx.RunFunc(func(ctx context.Context) error {
			mux.Handle(c.WSPath, srv.WebsocketHandler(ctx))
			glog.Infof("serving websocket on %s%s", c.HTTPListen, c.WSPath)
			return fx.RunWithContextCloser(ctx, httpSrv, httpSrv.ListenAndServe)
		})))
	}
	if c.MQTTURL != "" {
		opts, prefix, err := mqtt.ClientOptionsFromURL(c.MQTTURL)
		if err != nil {
			return nil, err
		}
		if opts.ClientID == "" {
			opts.SetClientID(env.ClientID("daemon"))
		}
		q := mqtt.NewQueue(opts, prefix)
		runnables = append(runnables, fx.NamedRun("mqtt", fx.RunFunc(func(ctx context.Context) error {
			if err := q.Connect(); err != nil {
				return err
			}
			defer q.Close()
			glog.Infof("serving %s%s on MQTT", prefix, c.Name)
			return srv.ServeMQTT(ctx, q, c.Name)
		})))
	}
	if len(runnables) == 0 {
		return nil, ErrNoListener
	}
	return runnables, nil
}

// Run opens the bridge channel and serves it until stopped.
func (c *Config) Run(envConf *env.Config) error {
	ch, err := envConf.OpenChannel(envConf.Device)
	if err != nil {
		return err
	}
	defer ch.Close()
	if envConf.BootFile != "" {
		session, err := envConf.NewSession()
		if err != nil {
			return err
		}
		if _, err = session.BootLoaderFile(ch, envConf.BootFile); err != nil {
			return err
		}
	}
	srv := remote.NewServer(ch).WithRateLimit(c.RateLimit)
	runnables, err := c.Runnables(srv)
	if err != nil {
		return err
	}
	return fx.NewRunner().HandleSignals().Go(runnables...).Wait()
}
