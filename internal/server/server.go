package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/grayman/dealflows/internal/discovery"
	"github.com/grayman/dealflows/internal/landing"
	"github.com/grayman/dealflows/internal/logging"
	"github.com/grayman/dealflows/internal/version"
)

// Config holds the server configuration
type Config struct {
	Host            string
	Port            int
	LogLevel        string
	TickInterval    time.Duration // Counter tick period (0 = landing.DefaultTickInterval)
	PageTTL         time.Duration // Pages with no socket and no request for this long are unmounted
	ShutdownTimeout time.Duration
	Advertise       bool   // Publish the server over mDNS
	Instance        string // mDNS instance name

	// NewTicker overrides the ticker source of every page (tests)
	NewTicker landing.TickerFunc
}

// Server is the landing page HTTP host
type Server struct {
	config    *Config
	pages     *pageRegistry
	templates *template.Template
	upgrader  websocket.Upgrader
	handler   http.Handler

	// cancelled on Shutdown; open websockets and the janitor watch it
	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	httpServer  *http.Server
	activeConns map[*websocket.Conn]string // open sockets by page id
	connsClosed chan struct{}              // closed when activeConns drains during shutdown

	advertiser *discovery.Advertiser
	wg         sync.WaitGroup
	shutdown   sync.Once
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	var pageOpts []landing.PageOption
	if config.TickInterval > 0 {
		pageOpts = append(pageOpts, landing.WithTickInterval(config.TickInterval))
	}
	if config.NewTicker != nil {
		pageOpts = append(pageOpts, landing.WithAnimatorOptions(landing.WithTicker(config.NewTicker)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:    config,
		pages:     newPageRegistry(config.PageTTL, pageOpts...),
		templates: tmpl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		activeConns: make(map[*websocket.Conn]string),
		ctx:         ctx,
		cancel:      cancel,
	}
	s.handler = s.routes()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pages.runJanitor(ctx)
	}()

	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))

	logging.Info("Starting landing page server",
		zap.String("addr", addr),
		zap.String("version", version.Full()),
		zap.Duration("tick_interval", s.tickInterval()),
		zap.Duration("page_ttl", s.pages.ttl),
	)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	if s.config.Advertise {
		port := listener.Addr().(*net.TCPAddr).Port
		adv, err := discovery.Advertise(s.config.Instance, port, version.Version)
		if err != nil {
			// The page still works without advertisement
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			s.advertiser = adv
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(listener)
	}()

	logging.Info("Server listening for connections", zap.String("addr", listener.Addr().String()))

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return s.Shutdown(ctx)
	case err := <-errChan:
		_ = s.Shutdown(context.Background())
		return err
	}
}

// Serve accepts connections on listener until Shutdown
func (s *Server) Serve(listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return s.ctx },
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	err := srv.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests, closes open websockets and unmounts
// every page. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdown.Do(func() {
		logging.Info("Shutting down server...")

		s.advertiser.Shutdown()

		// Stops the janitor; websocket loops exit when ctx is cancelled
		s.cancel()

		s.mu.Lock()
		srv := s.httpServer
		s.connsClosed = make(chan struct{})
		if len(s.activeConns) == 0 {
			close(s.connsClosed)
		}
		for conn, pageID := range s.activeConns {
			logging.LogConnection(conn.RemoteAddr().String(), pageID, "closing_for_shutdown")
			_ = conn.Close()
		}
		connsClosed := s.connsClosed
		s.mu.Unlock()

		if srv != nil {
			if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
				logging.Warn("HTTP shutdown incomplete", zap.Error(shutdownErr))
				err = shutdownErr
			}
		}

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			<-connsClosed
			close(done)
		}()

		select {
		case <-done:
			logging.Info("All connections closed gracefully")
		case <-ctx.Done():
			logging.Warn("Shutdown timeout, forcing close")
		}

		n := s.pages.closeAll("server_shutdown")
		logging.Info("Pages unmounted", zap.Int("count", n))

		logging.Sync()
	})
	return err
}

// ActivePages returns the number of mounted pages
func (s *Server) ActivePages() int {
	return s.pages.len()
}

// ActiveConnections returns the number of open websockets
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}

func (s *Server) trackConn(conn *websocket.Conn, pageID string) {
	s.mu.Lock()
	s.activeConns[conn] = pageID
	s.mu.Unlock()
}

func (s *Server) untrackConn(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.activeConns, conn)
	if s.connsClosed != nil && len(s.activeConns) == 0 {
		select {
		case <-s.connsClosed:
		default:
			close(s.connsClosed)
		}
	}
}

func (s *Server) tickInterval() time.Duration {
	if s.config.TickInterval > 0 {
		return s.config.TickInterval
	}
	return landing.DefaultTickInterval
}
