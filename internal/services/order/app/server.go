// Package server wires the order runtime and HTTP lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/wharfside/marketplace/internal/platform/config"
	"github.com/wharfside/marketplace/internal/platform/id"
	"github.com/wharfside/marketplace/internal/platform/metrics"
	"github.com/wharfside/marketplace/internal/platform/timeouts"
	"github.com/wharfside/marketplace/internal/services/order/api/httpapi"
	"github.com/wharfside/marketplace/internal/services/order/notify"
	"github.com/wharfside/marketplace/internal/services/order/service"
	ordersqlite "github.com/wharfside/marketplace/internal/services/order/storage/sqlite"
	"github.com/wharfside/marketplace/internal/services/order/voucher"
)

type serverEnv struct {
	DBPath     string `env:"WHARFSIDE_ORDER_DB_PATH"`
	JWTSecret  string `env:"WHARFSIDE_ORDER_JWT_SECRET"`
	VoucherURL string `env:"WHARFSIDE_ORDER_VOUCHER_URL"`
	Locale     string `env:"WHARFSIDE_ORDER_LOCALE" envDefault:"en"`
	QueueSize  int    `env:"WHARFSIDE_ORDER_NOTIFY_QUEUE" envDefault:"256"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "order.db")
	}
	return cfg
}

// Server hosts the order HTTP API, the notification dispatcher, and the
// storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *ordersqlite.Store
	dispatcher *notify.Dispatcher
}

// New creates a configured order server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured order server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	env := loadServerEnv()
	if strings.TrimSpace(env.JWTSecret) == "" {
		_ = listener.Close()
		return nil, errors.New("WHARFSIDE_ORDER_JWT_SECRET is required")
	}

	store, err := openOrderStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	orderMetrics := metrics.NewOrderMetrics(nil)

	dispatcher := notify.NewDispatcher(store,
		notify.WithQueueSize(env.QueueSize),
		notify.WithIDFunc(id.NewID),
		notify.WithFailureHook(orderMetrics.NotificationFailures.Inc),
	)
	dispatcher.Start()

	var vouchers service.Vouchers
	if env.VoucherURL != "" {
		vouchers = voucher.NewClient(env.VoucherURL, nil)
	}

	orderService, err := service.New(service.Config{
		Store:    store,
		Notifier: dispatcher,
		Vouchers: vouchers,
		Metrics:  orderMetrics,
		Locale:   env.Locale,
	})
	if err != nil {
		dispatcher.Close()
		_ = store.Close()
		_ = listener.Close()
		return nil, fmt.Errorf("build order service: %w", err)
	}

	router := httpapi.NewRouter(httpapi.Config{
		Service:   orderService,
		JWTSecret: []byte(env.JWTSecret),
		Locale:    env.Locale,
	})

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:      store,
		dispatcher: dispatcher,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves an order server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the HTTP server until context cancellation, then shuts it
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("order server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}
}

// Close releases order server resources. The dispatcher drains before the
// store closes so queued notifications still land.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.dispatcher != nil {
		s.dispatcher.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close order store: %v", err)
		}
	}
}

func openOrderStore(path string) (*ordersqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := ordersqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open order sqlite store: %w", err)
	}
	return store, nil
}
