package directors

import (
	"sync"

	"go.uber.org/zap"
)

// ServiceManager holds the process-wide services. It is populated once,
// before the listener starts, and read by every request afterwards.
type ServiceManager struct {
	PokemonService *PokemonService
	logger         *zap.SugaredLogger
}

// Private instance and mutex for thread safety
var (
	instance *ServiceManager
	once     sync.Once
	mu       sync.RWMutex
)

// GetServiceManager returns the singleton instance of ServiceManager
func GetServiceManager() *ServiceManager {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		// If someone tries to get the instance before initialization,
		// return a basic empty instance
		return &ServiceManager{}
	}
	return instance
}

// InitServiceManager initializes the ServiceManager singleton. Later calls
// return the first instance unchanged.
func InitServiceManager(pokemonService *PokemonService, logger *zap.SugaredLogger) *ServiceManager {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		instance = &ServiceManager{
			PokemonService: pokemonService,
			logger:         logger,
		}

		if logger != nil && pokemonService != nil {
			logger.Infow("ServiceManager singleton initialized", "records", pokemonService.Count())
		}
	})

	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// ResetServiceManager is useful for testing - it resets the singleton
func ResetServiceManager() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}
