package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"pokeserver/src/data"
	"pokeserver/src/directors"
	"pokeserver/src/engine"
	"pokeserver/src/settings"

	"go.uber.org/zap"
)

// ServerOptions configures the HTTP listener. Zero values fall back to the
// defaults below.
type ServerOptions struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// Server represents the HTTP front end of the dataset
type Server struct {
	Host     string
	Port     int
	Listener net.Listener
	Running  bool

	http     *http.Server
	services *directors.ServiceManager
	logger   *zap.SugaredLogger
	opts     ServerOptions
	mu       sync.Mutex
	serveErr chan error
}

// InitServer builds the logger, loads the dataset and wires the services
// from the process settings.
func InitServer(config *settings.Arguments) (*Server, error) {
	logger, err := NewLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Create a sugared logger for easier API
	sugar := logger.Sugar()

	// Replace standard log with zap
	zap.ReplaceGlobals(logger)

	dataset, err := engine.LoadDataset(config.DataFile, sugar)
	if err != nil {
		return nil, err
	}

	pokemonService := directors.NewPokemonService(dataset, sugar)
	serviceManager := directors.InitServiceManager(pokemonService, sugar)

	return NewServer(serviceManager, ServerOptions{
		Host:            config.Host,
		Port:            config.Port,
		ReadTimeout:     config.ReadTimeout,
		WriteTimeout:    config.WriteTimeout,
		ShutdownTimeout: config.ShutdownTimeout,
	}, sugar), nil
}

// NewLogger builds the zap logger described by the settings: a development
// logger on stdout in debug mode, a production logger otherwise, optionally
// teeing into a timestamped file under LogDir.
func NewLogger(config *settings.Arguments) (*zap.Logger, error) {
	var zc zap.Config
	if config.Debug {
		// Development configuration with more verbose output
		zc = zap.NewDevelopmentConfig()
	} else {
		// Production configuration
		zc = zap.NewProductionConfig()
	}

	zc.OutputPaths = nil
	if config.LogDir != "" {
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		logFilename := fmt.Sprintf("%s_%s_ServerLog.txt", timestamp, config.Host)
		zc.OutputPaths = append(zc.OutputPaths, filepath.Join(config.LogDir, logFilename))
	}
	if config.LogDir == "" || config.PrintToScreen {
		zc.OutputPaths = append(zc.OutputPaths, "stdout")
	}
	if !config.Verbose && !config.Debug {
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	return zc.Build()
}

// NewServer creates a server over an initialized ServiceManager. It does not
// listen until Start is called.
func NewServer(services *directors.ServiceManager, opts ServerOptions, logger *zap.SugaredLogger) *Server {
	if services == nil || services.PokemonService == nil {
		panic("server.NewServer: pokemon service is nil")
	}
	if opts.Host == "" {
		opts.Host = settings.DefaultHost
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 5 * time.Second
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	s := &Server{
		Host:     opts.Host,
		Port:     opts.Port,
		services: services,
		logger:   logger,
		opts:     opts,
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		ErrorLog:          zap.NewStdLog(logger.Desugar()),
	}
	return s
}

// Handler returns the full middleware-wrapped route table.
func (s *Server) Handler() http.Handler {
	return withCORS(withRequestLogging(s.routes(), s.logger))
}

// Start binds the listener and serves in a background goroutine.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Running {
		return errors.New("server already running")
	}

	addr := net.JoinHostPort(s.Host, fmt.Sprint(s.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error starting server on %s: %w", addr, err)
	}

	s.Listener = listener
	s.Running = true
	s.serveErr = make(chan error, 1)

	s.logger.Infow("Server started accepting connections", "addr", listener.Addr().String())
	s.logger.Info(data.Welcome)

	go func(errCh chan<- error) {
		err := s.http.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
		close(errCh)
	}(s.serveErr)

	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Listener == nil {
		return ""
	}
	return s.Listener.Addr().String()
}

// Wait blocks until the serve loop exits and returns its error, nil after a
// graceful Stop.
func (s *Server) Wait() error {
	s.mu.Lock()
	errCh := s.serveErr
	s.mu.Unlock()
	if errCh == nil {
		return nil
	}
	return <-errCh
}

// Stop gracefully shuts down the server, waiting up to ShutdownTimeout for
// in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.Running {
		s.mu.Unlock()
		return nil
	}
	s.Running = false
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.opts.ShutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(ctx)

	// Flush any buffered log entries
	s.logger.Info("Server shutdown complete")
	_ = s.logger.Sync()

	return err
}
