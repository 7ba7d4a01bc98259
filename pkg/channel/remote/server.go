package remote

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"
	"golang.org/x/time/rate"

	"github.com/robotalks/fpgabridge/pkg/bridge"
	"github.com/robotalks/fpgabridge/pkg/comm"
	"github.com/robotalks/fpgabridge/pkg/comm/mqtt"
	"github.com/robotalks/fpgabridge/pkg/comm/stream"
	ws "github.com/robotalks/fpgabridge/pkg/comm/websocket"
	fx "github.com/robotalks/fpgabridge/pkg/framework"
)

// Server executes transfer requests on a local channel.
// Requests from all connections are serialized.
type Server struct {
	Channel bridge.Channel
	// Limiter throttles transfers when set.
	Limiter *rate.Limiter
	// Metrics records transfers when set.
	Metrics *Metrics

	lock sync.Mutex
}

// NewServer creates a Server for ch.
func NewServer(ch bridge.Channel) *Server {
	return &Server{Channel: ch}
}

// WithRateLimit limits transfers per second, 0 means unlimited.
func (s *Server) WithRateLimit(tps float64) *Server {
	if tps > 0 {
		s.Limiter = rate.NewLimiter(rate.Limit(tps), 1)
	} else {
		s.Limiter = nil
	}
	return s
}

// Serve handles requests from conn until it fails or ctx is done.
// conn is closed when Serve returns.
func (s *Server) Serve(ctx context.Context, conn comm.PacketConn) error {
	s.Metrics.connected(1)
	defer s.Metrics.connected(-1)
	return fx.RunWithContextCloser(ctx, conn, func() error {
		for {
			pkt, err := conn.ReadPacket()
			if err != nil {
				return err
			}
			var req Request
			var rep *Reply
			if err = req.Unmarshal(pkt); err != nil {
				rep = &Reply{Error: err.Error()}
			} else {
				rep = s.Handle(ctx, &req)
			}
			if err = conn.WritePacket(rep.Marshal()); err != nil {
				return err
			}
		}
	})
}

// Handle executes a single request.
func (s *Server) Handle(ctx context.Context, req *Request) *Reply {
	if req.Op != OpStatus && s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			return &Reply{Error: err.Error()}
		}
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	rep := &Reply{Open: s.Channel.IsOpen()}
	var err error
	switch req.Op {
	case OpStatus:
		return rep
	case OpWrite:
		rep.Count, err = s.Channel.Write(req.Data)
	case OpRead:
		if req.Length < 0 || req.Length > comm.MaxPacketSize {
			rep.Error = comm.ErrPacketTooLarge.Error()
			return rep
		}
		buf := make([]byte, req.Length)
		rep.Count, err = s.Channel.Read(buf)
		if rep.Count > 0 {
			rep.Data = buf[:rep.Count]
		}
	default:
		rep.Error = "unknown op " + req.Op.String()
		return rep
	}
	if err != nil {
		rep.Error = err.Error()
	}
	s.Metrics.observe(req, rep)
	glog.V(3).Infof("%s %d bytes: %d done", req.Op, len(req.Data)+req.Length, rep.Count)
	return rep
}

// ServeListener accepts stream connections from l until ctx is done.
func (s *Server) ServeListener(ctx context.Context, l net.Listener) error {
	return fx.RunWithContextCloser(ctx, l, func() error {
		for {
			conn, err := l.Accept()
			if err != nil {
				return err
			}
			glog.Infof("accepted %s", conn.RemoteAddr())
			go func() {
				err := s.Serve(ctx, stream.New(conn))
				glog.Infof("disconnected %s: %v", conn.RemoteAddr(), err)
			}()
		}
	})
}

// WebsocketHandler serves websocket connections.
func (s *Server) WebsocketHandler(ctx context.Context) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		glog.Infof("websocket accepted %s", conn.Request().RemoteAddr)
		err := s.Serve(ctx, ws.New(conn))
		glog.Infof("websocket disconnected %s: %v", conn.Request().RemoteAddr, err)
	})
}

// ServeMQTT serves requests published to name/request on q.
func (s *Server) ServeMQTT(ctx context.Context, q *mqtt.Queue, name string) error {
	rw := mqtt.NewPacketReadWriter(q).ForServer(name)
	if err := rw.Start(); err != nil {
		return err
	}
	return s.Serve(ctx, rw)
}
