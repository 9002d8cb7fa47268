package mediasvc

import (
	"fmt"
	"log"
	"sync"

	"github.com/trezcool/shule/core"
)

// consoleService fakes an object store for tests and local development.
type consoleService struct {
	mu            sync.Mutex
	count         int
	destroyed     []string
	disableOutput bool
}

var _ core.MediaService = (*consoleService)(nil)

func NewConsoleService() core.MediaService {
	return &consoleService{}
}

func NewConsoleServiceMock() core.MediaService {
	return &consoleService{disableOutput: true}
}

func (svc *consoleService) Upload(data string) (core.Asset, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.count++
	asset := core.Asset{
		PublicID: fmt.Sprintf("console/asset-%d", svc.count),
		URL:      fmt.Sprintf("https://media.local/console/asset-%d", svc.count),
	}
	if !svc.disableOutput {
		log.Printf("media: uploaded %d bytes as %s", len(data), asset.PublicID)
	}
	return asset, nil
}

func (svc *consoleService) Destroy(publicID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.destroyed = append(svc.destroyed, publicID)
	if !svc.disableOutput {
		log.Printf("media: destroyed %s", publicID)
	}
	return nil
}
