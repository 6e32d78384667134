package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/iot-manager/console/pkg/history"
	"github.com/iot-manager/console/pkg/navigation"
	"github.com/iot-manager/console/pkg/routepath"
	"github.com/iot-manager/console/pkg/routetable"
	"github.com/iot-manager/console/pkg/views"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxFrame   = 4096
	maxPending = 64
)

// Frame operations.
const (
	OpNavigate = "navigate"
	OpBack     = "back"
	OpForward  = "forward"
	OpGo       = "go"
)

// Frame error codes.
const (
	ErrCodeRouteNotFound = "route_not_found"
	ErrCodeNoHistory     = "no_history"
	ErrCodeBadFrame      = "bad_frame"
	ErrCodeInternal      = "internal"
)

// ClientFrame is a navigation request sent by the browser. Delta is the
// number of history entries an OpGo traversal moves.
type ClientFrame struct {
	Seq     uint64 `json:"seq"`
	Op      string `json:"op,omitempty"`
	Path    string `json:"path,omitempty"`
	Replace bool   `json:"replace,omitempty"`
	Delta   int    `json:"delta,omitempty"`
}

// coalesces reports whether a newer frame may replace f while f is pending.
// Only absolute navigations do; traversals are relative and must all run.
func (f ClientFrame) coalesces() bool {
	return f.Op == "" || f.Op == OpNavigate
}

// ServerFrame answers a ClientFrame. Seq echoes the request.
type ServerFrame struct {
	Seq     uint64 `json:"seq"`
	Op      string `json:"op,omitempty"`
	Path    string `json:"path,omitempty"`
	Name    string `json:"name,omitempty"`
	Href    string `json:"href,omitempty"`
	HTML    string `json:"html,omitempty"`
	Replace bool   `json:"replace,omitempty"`
	Error   string `json:"error,omitempty"`
}

// errMailboxFull is returned by put when a client queues more traversals
// than the session will hold.
var errMailboxFull = errors.New("too many pending frames")

// mailbox queues client frames for the writer. A pending navigation is
// replaced by a newer navigation that arrives directly after it; traversal
// frames are kept in arrival order.
type mailbox struct {
	mu      sync.Mutex
	pending []ClientFrame
	ready   chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{ready: make(chan struct{}, 1)}
}

// put queues f and reports whether it replaced an unprocessed navigation.
func (m *mailbox) put(f ClientFrame) (bool, error) {
	m.mu.Lock()
	dropped := false
	n := len(m.pending)
	switch {
	case n > 0 && f.coalesces() && m.pending[n-1].coalesces():
		m.pending[n-1] = f
		dropped = true
	case n >= maxPending:
		m.mu.Unlock()
		return false, errMailboxFull
	default:
		m.pending = append(m.pending, f)
	}
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
	return dropped, nil
}

// take removes the oldest pending frame.
func (m *mailbox) take() (ClientFrame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return ClientFrame{}, false
	}
	f := m.pending[0]
	m.pending = m.pending[1:]
	if len(m.pending) == 0 {
		m.pending = nil
	}
	return f, true
}

// session is one live navigation socket.
type session struct {
	id       string
	server   *Server
	conn     *websocket.Conn
	nav      *navigation.Navigator
	renderer *views.BufferRenderer
	inbox    *mailbox
	replies  chan ServerFrame
	logger   *slog.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	renderer := views.NewBufferRenderer()
	sess := &session{
		id:       uuid.NewString(),
		server:   s,
		conn:     conn,
		renderer: renderer,
		inbox:    newMailbox(),
		replies:  make(chan ServerFrame, 8),
		ctx:      ctx,
		cancel:   cancel,
	}
	sess.logger = s.logger.With("session", sess.id)
	sess.nav = navigation.New(s.table, history.New(s.config.BasePath), renderer,
		navigation.WithMiddleware(s.middleware...),
		navigation.WithLogger(sess.logger))

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.SessionOpened()
	}
	sess.logger.Debug("session opened", "remote", r.RemoteAddr)

	sess.start(r.URL.Query().Get("path"))
	go sess.writeLoop()
	sess.readLoop()
}

// start points the session history at the page the browser loaded.
func (sess *session) start(page string) {
	rel, ok := routepath.StripBase(sess.server.config.BasePath, page)
	if page == "" || !ok {
		rel = routetable.LandingPath
	}
	if _, err := sess.nav.Navigate(sess.ctx, rel, navigation.WithReplace()); err != nil {
		sess.logger.Debug("session start path not routable", "path", page, "error", err)
	}
}

// readLoop decodes client frames into the mailbox until the socket closes.
func (sess *session) readLoop() {
	defer sess.close(websocket.CloseNormalClosure, "")

	sess.conn.SetReadLimit(maxFrame)
	_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.logger.Warn("read error", "error", err)
			}
			return
		}

		var f ClientFrame
		if err := json.Unmarshal(msg, &f); err != nil {
			sess.logger.Warn("frame decode error", "error", err)
			// Answer directly so a queued navigation is not displaced.
			var hdr struct {
				Seq uint64 `json:"seq"`
			}
			_ = json.Unmarshal(msg, &hdr)
			sess.reply(ServerFrame{Seq: hdr.Seq, Error: ErrCodeBadFrame})
			continue
		}
		dropped, err := sess.inbox.put(f)
		if err != nil {
			sess.logger.Warn("closing session", "error", err)
			sess.close(websocket.ClosePolicyViolation, err.Error())
			return
		}
		if dropped {
			sess.logger.Debug("pending navigation dropped", "seq", f.Seq)
		}
	}
}

// writeLoop processes pending frames in order and keeps the socket alive.
// It is the only writer on the connection.
func (sess *session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-sess.ctx.Done():
			return
		case <-ticker.C:
			_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sess.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				sess.close(websocket.CloseAbnormalClosure, "")
				return
			}
		case f := <-sess.replies:
			if err := sess.send(f); err != nil {
				sess.logger.Warn("write error", "error", err)
				sess.close(websocket.CloseAbnormalClosure, "")
				return
			}
		case <-sess.inbox.ready:
			for {
				f, ok := sess.inbox.take()
				if !ok {
					break
				}
				if err := sess.send(sess.handle(f)); err != nil {
					sess.logger.Warn("write error", "error", err)
					sess.close(websocket.CloseAbnormalClosure, "")
					return
				}
			}
		}
	}
}

// handle runs one frame through the session Navigator.
func (sess *session) handle(f ClientFrame) ServerFrame {
	out := ServerFrame{Seq: f.Seq, Op: f.Op, Replace: f.Replace}
	if out.Op == "" {
		out.Op = OpNavigate
	}

	var (
		res *navigation.Result
		err error
	)
	switch out.Op {
	case OpNavigate:
		var opts []navigation.NavigateOption
		if f.Replace {
			opts = append(opts, navigation.WithReplace())
		}
		res, err = sess.nav.Navigate(sess.ctx, f.Path, opts...)
	case OpBack:
		res, err = sess.nav.Back(sess.ctx)
	case OpForward:
		res, err = sess.nav.Forward(sess.ctx)
	case OpGo:
		res, err = sess.nav.Go(sess.ctx, f.Delta)
	default:
		out.Error = ErrCodeBadFrame
		return out
	}

	switch {
	case err == nil:
		out.Path = res.Location.Path
		out.Name = res.Entry.Name
		out.Href = res.Href
		out.HTML = sess.renderer.HTML()
	case routetable.IsNotFound(err):
		out.Error = ErrCodeRouteNotFound
		out.Path = f.Path
		var body bytes.Buffer
		ctx := views.WithRequestPath(sess.ctx, f.Path)
		if rerr := sess.server.views.NotFound.Render(ctx, &body); rerr == nil {
			out.HTML = body.String()
		}
	case errors.Is(err, navigation.ErrNoHistory):
		out.Error = ErrCodeNoHistory
	default:
		sess.logger.Error("navigation failed", "seq", f.Seq, "error", err)
		out.Error = ErrCodeInternal
	}
	return out
}

// reply queues a frame for the writer without blocking the read loop.
func (sess *session) reply(f ServerFrame) {
	select {
	case sess.replies <- f:
	default:
		sess.logger.Warn("reply dropped", "seq", f.Seq, "error", f.Error)
	}
}

func (sess *session) send(f ServerFrame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return sess.conn.WriteMessage(websocket.TextMessage, data)
}

// close tears the session down once.
func (sess *session) close(code int, reason string) {
	sess.closeOnce.Do(func() {
		sess.cancel()
		msg := websocket.FormatCloseMessage(code, reason)
		_ = sess.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = sess.conn.Close()

		s := sess.server
		if s.metrics != nil {
			s.metrics.SessionClosed()
		}
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
		sess.logger.Debug("session closed")
	})
}
