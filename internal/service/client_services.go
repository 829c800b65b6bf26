package service

import (
	"github.com/Comraich/sortr-sub001/internal/adapter"
	"github.com/Comraich/sortr-sub001/internal/cache"
	"github.com/Comraich/sortr-sub001/internal/crypto"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
)

// ClientServices is the data layer handed to the terminal UI.
type ClientServices struct {
	Session    ClientSession
	Repository ClientRepository
	Cache      *cache.TTLCache
}

func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, sealer crypto.Sealer, readCache *cache.TTLCache, defaultServerURL string, logger *logger.Logger) *ClientServices {
	session := NewClientSession(serverAdapter, localStore.Credentials, localStore.Settings, sealer, readCache, defaultServerURL, logger)

	return &ClientServices{
		Session:    session,
		Repository: NewClientRepository(serverAdapter, session, readCache, logger),
		Cache:      readCache,
	}
}
