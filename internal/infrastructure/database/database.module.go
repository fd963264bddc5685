package database

import (
	"go.uber.org/fx"

	"cetime-core/internal/infrastructure/database/mongodb"
	"cetime-core/internal/infrastructure/database/postgres"
	"cetime-core/internal/infrastructure/database/redis"
)

var Module = fx.Options(

	// Modules database
	postgres.Module,
	redis.Module,
	mongodb.Module,
)
