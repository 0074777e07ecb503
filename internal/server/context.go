package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ecomtools/sellerbridge/internal/amazon"
	"github.com/ecomtools/sellerbridge/internal/config"
	"github.com/ecomtools/sellerbridge/internal/logging"
	"github.com/ecomtools/sellerbridge/internal/tokens"
)

// pingTimeout bounds the startup connectivity probe of the durable store.
const pingTimeout = 5 * time.Second

// ServerContext holds the shared dependencies of all MCP tools.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg      *config.Config
	flow     *amazon.Flow
	client   *amazon.Client
	manager  *tokens.Manager
	redis    *tokens.RedisStore    // nil when running on in-process storage only
	fallback *tokens.FallbackStore // nil when running on in-process storage only
	metrics  *Metrics

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext builds the runtime context from configuration.
//
// When a Redis URL is configured the token store is the durable store
// wrapped in the in-process fallback; otherwise tokens live in process
// memory only. A failing Redis connection is logged, not fatal: the
// fallback masks it per operation.
func NewServerContext(ctx context.Context, cfg *config.Config) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	flow := amazon.NewFlow(amazon.FlowConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		AppID:        cfg.AppID,
		RedirectURI:  cfg.RedirectURI,
		TokenURL:     cfg.TokenURL,
		ConsentBase:  cfg.ConsentBase,
	})

	sc := &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		cfg:    cfg,
		flow:   flow,
		client: amazon.NewClient(),
	}

	var store tokens.Store = tokens.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisStore, err := tokens.NewRedisStore(cfg.RedisURL)
		if err != nil {
			// A malformed URL is a configuration error worth failing on.
			cancel()
			return nil, err
		}

		pingCtx, pingCancel := context.WithTimeout(shutdownCtx, pingTimeout)
		if err := redisStore.Ping(pingCtx); err != nil {
			slog.Warn("durable token store unreachable at startup, operations will degrade to in-process storage",
				logging.Store("redis"), logging.Err(err))
		}
		pingCancel()

		sc.redis = redisStore
		sc.fallback = tokens.NewFallbackStore(redisStore, tokens.NewMemoryStore())
		store = sc.fallback
	} else {
		slog.Info("no REDIS_URL configured, storing tokens in process memory only")
	}

	sc.manager = tokens.NewManager(store, flow)
	return sc, nil
}

// Context returns the server lifetime context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// Flow returns the auth flow helper.
func (sc *ServerContext) Flow() *amazon.Flow {
	return sc.flow
}

// Client returns the API dispatcher.
func (sc *ServerContext) Client() *amazon.Client {
	return sc.client
}

// TokenManager returns the token lifecycle manager.
func (sc *ServerContext) TokenManager() *tokens.Manager {
	return sc.manager
}

// SetMetrics attaches metrics and wires the token-layer hooks to them.
func (sc *ServerContext) SetMetrics(m *Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.metrics = m
	if m == nil {
		return
	}
	sc.manager.SetRefreshHook(m.ObserveTokenRefresh)
	if sc.fallback != nil {
		sc.fallback.SetDegradeHook(m.ObserveStoreFallback)
	}
}

// Metrics returns the attached metrics, or nil.
func (sc *ServerContext) Metrics() *Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the context and releases the durable store client.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()

	if sc.redis != nil {
		return sc.redis.Close()
	}
	return nil
}
