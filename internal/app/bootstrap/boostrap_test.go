package bootstrap

import (
	"context"
	"testing"

	"cetime-core/internal/infrastructure/database/mongodb"

	"github.com/stretchr/testify/assert"
)

// La phase collections MongoDB ne doit jamais bloquer le démarrage,
// l'application fonctionne sans journal de notifications.
func TestExecutePhase3_MongoIndisponible(t *testing.T) {
	bs := &BootstrapSystem{
		collectionManager: mongodb.NewCollectionManager(&mongodb.Client{}),
	}

	result := bs.executePhase3(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "Phase 3: Collections MongoDB", result.Phase)
	assert.NotEmpty(t, result.Error)
}
