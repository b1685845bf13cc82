package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/chatwire/auth"
	"github.com/dshills/chatwire/command"
	"github.com/dshills/chatwire/connect"
	"github.com/dshills/chatwire/dispatch"
	"github.com/dshills/chatwire/event"
	"github.com/dshills/chatwire/irc"
	"github.com/dshills/chatwire/logging"
)

const (
	// DefaultActivityWindow is how long the connection may stay silent
	// before a probe PING goes out.
	DefaultActivityWindow = 45 * time.Second

	// DefaultProbeWindow is how long a probe may go unanswered before the
	// session times out.
	DefaultProbeWindow = 10 * time.Second

	// probeToken is the token carried by liveness probes.
	probeToken = "chatwire"

	readChunkSize  = 4096
	lineBufferSize = 32
)

// CredentialSource supplies the login and token used to register. An empty
// token means no PASS line is sent.
type CredentialSource interface {
	Credentials(ctx context.Context) (login, token string, err error)
}

// Stats is a point-in-time snapshot of the client's counters. Counters
// accumulate across sessions.
type Stats struct {
	// LinesRead counts decoded inbound lines.
	LinesRead uint64
	// BytesRead counts raw bytes taken off the transport.
	BytesRead uint64
	// LinesWritten counts outbound lines, handshake and keepalive included.
	LinesWritten uint64
	// PingsAnswered counts server pings answered with a pong.
	PingsAnswered uint64
	// ProbesSent counts liveness probes sent after a silent stretch.
	ProbesSent uint64
	// Status is the session status at snapshot time.
	Status Status
	// Identity is the authentication level at snapshot time.
	Identity Identity
}

// Client drives one chat connection at a time. It decodes inbound lines,
// keeps the link alive, answers server pings, and fans events out through
// its dispatcher. It never reconnects on its own; Run reports why a session
// ended and the caller decides what happens next.
type Client struct {
	connector  connect.Connector
	dispatcher *dispatch.Dispatcher
	creds      CredentialSource
	caps       []string
	channels   []string
	log        *logging.Logger

	activityWindow time.Duration
	probeWindow    time.Duration

	status   atomic.Int32
	identity atomic.Int32
	running  atomic.Bool

	linesRead     atomic.Uint64
	bytesRead     atomic.Uint64
	linesWritten  atomic.Uint64
	pingsAnswered atomic.Uint64
	probesSent    atomic.Uint64

	mu     sync.Mutex
	writer *Writer
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logging.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.WithComponent("client")
		}
	}
}

// WithDispatcher uses the given dispatcher instead of a private one.
func WithDispatcher(d *dispatch.Dispatcher) Option {
	return func(c *Client) {
		if d != nil {
			c.dispatcher = d
		}
	}
}

// WithCredentials sets the login source. The default is a fresh anonymous
// login per session.
func WithCredentials(src CredentialSource) Option {
	return func(c *Client) {
		if src != nil {
			c.creds = src
		}
	}
}

// WithCapabilities overrides the capability request. An empty set skips the
// CAP REQ line entirely.
func WithCapabilities(caps ...string) Option {
	return func(c *Client) {
		c.caps = caps
	}
}

// WithChannels joins the given channels as soon as a session is running.
func WithChannels(channels ...string) Option {
	return func(c *Client) {
		c.channels = channels
	}
}

// WithActivityWindow overrides DefaultActivityWindow.
func WithActivityWindow(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.activityWindow = d
		}
	}
}

// WithProbeWindow overrides DefaultProbeWindow.
func WithProbeWindow(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.probeWindow = d
		}
	}
}

// New creates a client that connects through the given connector. A nil
// connector means the default secure endpoint.
func New(connector connect.Connector, opts ...Option) *Client {
	c := &Client{
		connector:      connector,
		dispatcher:     dispatch.New(),
		creds:          auth.Anonymous(),
		caps:           command.DefaultCaps(),
		log:            logging.Nop(),
		activityWindow: DefaultActivityWindow,
		probeWindow:    DefaultProbeWindow,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.connector == nil {
		c.connector = connect.Default()
	}
	return c
}

// Dispatcher returns the event hub this client feeds.
func (c *Client) Dispatcher() *dispatch.Dispatcher {
	return c.dispatcher
}

// Status returns the current session status.
func (c *Client) Status() Status {
	return Status(c.status.Load())
}

// Identity returns the authentication level of the current session.
func (c *Client) Identity() Identity {
	return Identity(c.identity.Load())
}

// Stats returns a snapshot of the client's counters.
func (c *Client) Stats() Stats {
	return Stats{
		LinesRead:     c.linesRead.Load(),
		BytesRead:     c.bytesRead.Load(),
		LinesWritten:  c.linesWritten.Load(),
		PingsAnswered: c.pingsAnswered.Load(),
		ProbesSent:    c.probesSent.Load(),
		Status:        c.Status(),
		Identity:      c.Identity(),
	}
}

func (c *Client) setStatus(s Status) {
	c.status.Store(int32(s))
}

// Send writes a prebuilt line to the server.
func (c *Client) Send(line string) error {
	c.mu.Lock()
	w := c.writer
	c.mu.Unlock()
	if w == nil {
		return ErrNotConnected
	}
	return w.WriteLine(line)
}

// Join adds the session to one or more channels.
func (c *Client) Join(channels ...string) error {
	return c.Send(command.Join(channels...))
}

// Part removes the session from one or more channels.
func (c *Client) Part(channels ...string) error {
	return c.Send(command.Part(channels...))
}

// Say sends a chat message to a channel.
func (c *Client) Say(channel, text string) error {
	return c.Send(command.Privmsg(channel, text))
}

// Reply sends a threaded chat message answering the message with the given
// id.
func (c *Client) Reply(channel, parentID, text string) error {
	return c.Send(command.Reply(channel, parentID, text))
}

// sessionIO carries the per-session plumbing between the run phases.
type sessionIO struct {
	w            *Writer
	lines        chan irc.Message
	readErr      chan error
	lastActivity atomic.Int64
}

// Run drives one full session: open the transport, register, then pump
// events until the session ends. Terminal endings that are part of normal
// operation (EOF, cancellation, liveness timeout, server-requested
// reconnect) return a nil error; everything else returns the phase the
// failure happened in and the cause.
func (c *Client) Run(ctx context.Context) (Status, error) {
	if !c.running.CompareAndSwap(false, true) {
		return c.Status(), ErrAlreadyRunning
	}
	defer c.running.Store(false)

	c.identity.Store(int32(IdentityUnknown))
	c.setStatus(StatusConnecting)

	conn, err := c.connector.Open(ctx)
	if err != nil {
		if ctx.Err() != nil {
			c.setStatus(StatusCancelled)
			return StatusCancelled, nil
		}
		return StatusConnecting, fmt.Errorf("open connection: %w", err)
	}
	defer conn.Close()

	s := &sessionIO{
		w:       NewWriter(conn),
		lines:   make(chan irc.Message, lineBufferSize),
		readErr: make(chan error, 1),
	}
	s.w.lines = &c.linesWritten
	s.lastActivity.Store(time.Now().UnixNano())

	c.mu.Lock()
	c.writer = s.w
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.writer = nil
		c.mu.Unlock()
	}()

	done := make(chan struct{})
	defer close(done)
	go c.readLoop(conn, s, done)

	status, err := c.register(ctx, s)
	if err != nil || status.Terminal() {
		c.setStatus(status)
		return status, err
	}

	status, err = c.pump(ctx, s)
	c.setStatus(status)
	return status, err
}

// readLoop pulls bytes off the connection, frames them into messages, and
// hands owned copies to the session loop. It exits on the first read error,
// EOF included, or when the session ends.
func (c *Client) readLoop(conn io.Reader, s *sessionIO, done <-chan struct{}) {
	var buf []byte
	chunk := make([]byte, readChunkSize)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			s.lastActivity.Store(time.Now().UnixNano())
			c.bytesRead.Add(uint64(n))
			buf = append(buf, chunk[:n]...)
			for {
				consumed, msg, derr := irc.DecodeOne(buf)
				if errors.Is(derr, irc.ErrIncomplete) {
					break
				}
				buf = buf[consumed:]
				if derr != nil {
					c.log.Debug("skipping undecodable line: %v", derr)
					continue
				}
				select {
				case s.lines <- msg.Own():
					c.linesRead.Add(1)
				case <-done:
					return
				}
			}
			if len(buf) == 0 {
				buf = nil
			}
		}
		if err != nil {
			s.readErr <- err
			return
		}
	}
}

// register performs the login handshake: CAP REQ, PASS, NICK, in that
// order, then waits for the server's verdict. On success it returns
// StatusReady with the session promoted to Running by the caller.
func (c *Client) register(ctx context.Context, s *sessionIO) (Status, error) {
	c.setStatus(StatusRegistering)

	login, token, err := c.creds.Credentials(ctx)
	if err != nil {
		return StatusRegistering, fmt.Errorf("credentials: %w", err)
	}

	if len(c.caps) > 0 {
		if err := s.w.WriteLine(command.CapReq(c.caps...)); err != nil {
			return StatusRegistering, fmt.Errorf("send capability request: %w", err)
		}
	}
	if token != "" {
		if err := s.w.WriteLine(command.Pass(token)); err != nil {
			return StatusRegistering, fmt.Errorf("send pass: %w", err)
		}
	}
	if err := s.w.WriteLine(command.Nick(login)); err != nil {
		return StatusRegistering, fmt.Errorf("send nick: %w", err)
	}

	timer := time.NewTimer(c.activityWindow)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return StatusCancelled, nil
		case err := <-s.readErr:
			return StatusRegistering, fmt.Errorf("registration read: %w", err)
		case <-timer.C:
			return StatusTimedOut, nil
		case msg := <-s.lines:
			c.dispatcher.Dispatch(&msg)
			switch kind, _ := event.KindForCommand(msg.Command()); kind {
			case event.KindWelcome:
				if isAnonymousLogin(login) {
					c.identity.Store(int32(IdentityAnonymous))
				} else {
					c.identity.Store(int32(IdentityBasic))
				}
				c.setStatus(StatusReady)
				c.log.Info("registered as %s", login)
				return StatusReady, nil
			case event.KindPing:
				if p, perr := event.AsPing(&msg); perr == nil {
					if werr := s.w.WriteLine(command.Pong(p.Token)); werr != nil {
						return StatusRegistering, fmt.Errorf("send pong: %w", werr)
					}
					c.pingsAnswered.Add(1)
				}
			case event.KindNotice:
				if reason, bad := registrationFailure(&msg); bad {
					return StatusRegistering, fmt.Errorf("%w: %s", ErrInvalidRegistration, reason)
				}
			default:
				if denied, nak := capabilityDenied(&msg); nak {
					return StatusRegistering, fmt.Errorf("%w: %s", ErrCapabilityDenied, denied)
				}
			}
		}
	}
}

// pump is the steady-state loop. It answers pings, watches liveness, feeds
// the dispatcher, and returns when the session ends.
func (c *Client) pump(ctx context.Context, s *sessionIO) (Status, error) {
	c.setStatus(StatusRunning)

	if len(c.channels) > 0 {
		if err := s.w.WriteLine(command.Join(c.channels...)); err != nil {
			return StatusRunning, fmt.Errorf("join channels: %w", err)
		}
	}

	timer := time.NewTimer(c.activityWindow)
	defer timer.Stop()

	var (
		probing   bool
		probeSent time.Time
	)

	for {
		now := time.Now()
		last := time.Unix(0, s.lastActivity.Load())

		if probing && last.After(probeSent) {
			probing = false
		}

		var deadline time.Time
		if probing {
			deadline = probeSent.Add(c.probeWindow)
		} else {
			deadline = last.Add(c.activityWindow)
		}

		if !now.Before(deadline) {
			if probing {
				c.log.Warn("liveness probe unanswered after %s", c.probeWindow)
				return StatusTimedOut, nil
			}
			probing = true
			probeSent = now
			if err := s.w.WriteLine(command.Ping([]byte(probeToken))); err != nil {
				return StatusRunning, fmt.Errorf("send probe: %w", err)
			}
			c.probesSent.Add(1)
			deadline = probeSent.Add(c.probeWindow)
		}

		timer.Reset(time.Until(deadline))

		select {
		case <-ctx.Done():
			return StatusCancelled, nil
		case err := <-s.readErr:
			if errors.Is(err, io.EOF) {
				return StatusEOF, nil
			}
			return StatusRunning, fmt.Errorf("read: %w", err)
		case msg := <-s.lines:
			c.dispatcher.Dispatch(&msg)
			switch kind, _ := event.KindForCommand(msg.Command()); kind {
			case event.KindPing:
				if p, perr := event.AsPing(&msg); perr == nil {
					if werr := s.w.WriteLine(command.Pong(p.Token)); werr != nil {
						return StatusRunning, fmt.Errorf("send pong: %w", werr)
					}
					c.pingsAnswered.Add(1)
				}
			case event.KindReconnect:
				c.log.Info("server requested reconnect")
				return StatusReconnectRequested, nil
			case event.KindGlobalUserState:
				c.identity.Store(int32(IdentityFull))
			}
		case <-timer.C:
		}
	}
}

// isAnonymousLogin reports whether login is one of the shared read-only
// accounts.
func isAnonymousLogin(login string) bool {
	return strings.HasPrefix(strings.ToLower(login), "justinfan")
}

// registrationFailure matches the NOTICE lines the server uses to reject a
// login.
func registrationFailure(m *irc.Message) (string, bool) {
	d, ok := m.Data()
	if !ok {
		return "", false
	}
	text := strings.ToLower(string(d))
	switch {
	case strings.Contains(text, "authentication failed"),
		strings.Contains(text, "improperly formatted auth"),
		strings.Contains(text, "login unsuccessful"):
		return string(d), true
	}
	return "", false
}

// capabilityDenied matches CAP NAK replies.
func capabilityDenied(m *irc.Message) (string, bool) {
	if string(m.Command()) != "CAP" {
		return "", false
	}
	verdict, ok := m.Arg(1)
	if !ok || !bytes.Equal(verdict, []byte("NAK")) {
		return "", false
	}
	denied, _ := m.Data()
	return string(denied), true
}
