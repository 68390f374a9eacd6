package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"lobx/internal/book"
)

const (
	MAX_RECV_SIZE      = 4 * 1024
	defaultNWorkers    = 10
	defaultConnTimeout = time.Second
	connChanSize       = 100
)

var (
	ErrImproperConversion = errors.New("improper type conversion")
	ErrClientDoesNotExist = errors.New("client does not exist")
)

// ClientSession tracks a connected TCP session. It holds only the
// connection: resting order ids are not tracked per session, and fill
// reports go only to the session that sent the crossing command.
type ClientSession struct {
	conn net.Conn
}

// ClientMessage links a parsed message to the connection it arrived on.
type ClientMessage struct {
	clientAddress string
	message       Message
}

// Engine is the book surface the server drives. The server only ever
// depends on this interface, never on internal/book directly beyond the
// wire types it must construct/serialize.
type Engine interface {
	Dispatch(cmd book.Command) book.Result
	LogState()
}

// Server is a TCP front door for a single Book: it decodes the binary wire
// protocol, serializes commands through one session handler goroutine (the
// book's single-owner requirement per its concurrency model), and reports
// fills/errors back over the originating connection.
type Server struct {
	address            string
	port               int
	engine             Engine
	nWorkers           int
	conns              chan net.Conn
	cancel             context.CancelFunc
	clientSessions     map[string]ClientSession
	clientSessionsLock sync.Mutex
	clientMessages     chan ClientMessage
}

func New(address string, port int, engine Engine) *Server {
	return &Server{
		address:        address,
		port:           port,
		engine:         engine,
		nWorkers:       defaultNWorkers,
		conns:          make(chan net.Conn, connChanSize),
		clientSessions: make(map[string]ClientSession),
		clientMessages: make(chan ClientMessage, 1),
	}
}

func (s *Server) Shutdown() {
	log.Info().Msg("server shutting down")
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Server) Run(ctx context.Context) {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		log.Error().Err(err).Msg("unable to start listener")
		return
	}
	defer func() {
		if err := listener.Close(); err != nil {
			log.Error().Err(err).Msg("unable to close listener")
		}
	}()

	s.startWorkers(t)

	t.Go(func() error {
		return s.sessionHandler(t)
	})

	log.Info().Msg("server running")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			conn, err := listener.Accept()
			if err != nil {
				log.Error().Err(err).Msg("error accepting client")
				continue
			}

			log.Info().
				Str("address", conn.RemoteAddr().String()).
				Msg("new client added")
			s.addClientSession(conn)
			s.conns <- conn
		}
	}
}

// startWorkers keeps a fixed-size pool of goroutines draining s.conns, each
// reading and dispatching one message per handleConnection call before the
// connection is re-queued for its next read.
func (s *Server) startWorkers(t *tomb.Tomb) {
	log.Info().Int("workers", s.nWorkers).Msg("starting worker pool")
	active := 0
	t.Go(func() error {
		for {
			select {
			case <-t.Dying():
				return nil
			default:
				if active < s.nWorkers {
					t.Go(func() error {
						err := s.worker(t)
						active--
						return err
					})
					active++
				}
			}
		}
	})
}

func (s *Server) worker(t *tomb.Tomb) error {
	select {
	case <-t.Dying():
		return nil
	case conn := <-s.conns:
		if err := s.handleConnection(t, conn); err != nil {
			log.Error().Err(err).Msg("worker exiting")
			return err
		}
	}
	return nil
}

// sessionHandler is the book's single dispatching goroutine: every command
// from every connection is applied here, one at a time, satisfying the
// book's single-threaded-cooperative concurrency model.
func (s *Server) sessionHandler(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case cm := <-s.clientMessages:
			if err := s.handleMessage(cm); err != nil {
				log.Error().
					Err(err).
					Str("clientAddress", cm.clientAddress).
					Msg("error handling message")
				s.send(cm.clientAddress, errorReport(err))
			}
		}
	}
}

func (s *Server) handleMessage(cm ClientMessage) error {
	switch cm.message.GetType() {
	case NewOrder:
		m, ok := cm.message.(NewOrderMessage)
		if !ok {
			return ErrImproperConversion
		}
		result := s.engine.Dispatch(m.Command())
		s.reportResult(cm.clientAddress, m.Side, result)

	case CancelOrder:
		m, ok := cm.message.(CancelOrderMessage)
		if !ok {
			return ErrImproperConversion
		}
		s.engine.Dispatch(m.Command())

	case ModifyOrder:
		m, ok := cm.message.(ModifyOrderMessage)
		if !ok {
			return ErrImproperConversion
		}
		result := s.engine.Dispatch(m.Command())
		s.reportResult(cm.clientAddress, book.Buy, result)

	case LogBook:
		s.engine.LogState()

	default:
		log.Error().
			Int("messageType", int(cm.message.GetType())).
			Msg("invalid message type")
		return ErrInvalidMessageType
	}
	return nil
}

// reportResult sends one execution report per fill produced by a command.
func (s *Server) reportResult(clientAddress string, side book.Side, result book.Result) {
	for _, f := range result.Fills {
		s.send(clientAddress, fillReport(f))
	}
}

func (s *Server) send(clientAddress string, r Report) {
	s.clientSessionsLock.Lock()
	client, ok := s.clientSessions[clientAddress]
	s.clientSessionsLock.Unlock()
	if !ok {
		return
	}
	if _, err := client.conn.Write(r.Serialize()); err != nil {
		log.Error().Err(err).Str("address", clientAddress).Msg("unable to send report")
		s.deleteClientSession(clientAddress)
	}
}

// handleConnection reads the next message off a connection, parses it, and
// forwards it to sessionHandler. Any error returned from here is fatal to
// that connection's worker.
func (s *Server) handleConnection(t *tomb.Tomb, conn net.Conn) error {
	requeued := false
	defer func() {
		if requeued {
			return
		}
		if err := conn.Close(); err != nil {
			log.Error().Str("address", conn.RemoteAddr().String()).Err(err).Msg("closing connection")
		}
	}()

	if err := conn.SetDeadline(time.Now().Add(defaultConnTimeout)); err != nil {
		log.Error().Err(err).Msg("failed setting deadline for connection")
		return nil
	}

	buffer := make([]byte, MAX_RECV_SIZE)
	select {
	case <-t.Dying():
		return nil
	default:
		n, err := conn.Read(buffer)
		if err != nil {
			log.Error().
				Err(err).
				Str("address", conn.RemoteAddr().String()).
				Msg("error reading from connection")
			s.deleteClientSession(conn.RemoteAddr().String())
			return nil
		}

		message, err := parseMessage(buffer[:n])
		if err != nil {
			log.Error().
				Err(err).
				Str("address", conn.RemoteAddr().String()).
				Msg("error parsing message")
			return nil
		}

		s.clientMessages <- ClientMessage{
			message:       message,
			clientAddress: conn.RemoteAddr().String(),
		}

		requeued = true
		s.conns <- conn
	}
	return nil
}

func (s *Server) addClientSession(conn net.Conn) {
	s.clientSessionsLock.Lock()
	defer s.clientSessionsLock.Unlock()
	s.clientSessions[conn.RemoteAddr().String()] = ClientSession{conn: conn}
}

func (s *Server) deleteClientSession(address string) {
	s.clientSessionsLock.Lock()
	defer s.clientSessionsLock.Unlock()
	delete(s.clientSessions, address)
}
