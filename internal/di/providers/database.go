package providers

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/do/v2"

	"github.com/minatbaca/minatbaca-server/internal/config"
	"github.com/minatbaca/minatbaca-server/internal/logger"
	"github.com/minatbaca/minatbaca-server/internal/sse"
	"github.com/minatbaca/minatbaca-server/internal/store"
	"github.com/minatbaca/minatbaca-server/internal/store/memory"
	"github.com/minatbaca/minatbaca-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle groups the repositories behind the configured driver.
type StoreHandle struct {
	Profiles store.ProfileRepository
	Users    store.UserRepository
	closer   io.Closer
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}

// ProvideStore provides the repositories for the configured database driver.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Database.Driver {
	case "memory":
		log.Info("Using in-memory repositories")
		return &StoreHandle{
			Profiles: memory.NewProfileRepository(),
			Users:    memory.NewUserRepository(),
		}, nil
	case "sqlite":
		dbPath := cfg.DatabasePath()
		db, err := sqlite.Open(dbPath, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Database initialized", "path", dbPath)
		return &StoreHandle{
			Profiles: db,
			Users:    db.Users(),
			closer:   db,
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
