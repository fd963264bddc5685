package app

import (
	"cetime-core/internal/app/bootstrap"
	"cetime-core/internal/app/config"
	"cetime-core/internal/infrastructure/database"
	"cetime-core/internal/infrastructure/database/redis"
	"cetime-core/internal/infrastructure/logger"
	"cetime-core/internal/infrastructure/mailer"
	authModule "cetime-core/internal/modules/auth"
	documentModule "cetime-core/internal/modules/document"
	kpiModule "cetime-core/internal/modules/kpi"
	notificationModule "cetime-core/internal/modules/notification"
	prestationModule "cetime-core/internal/modules/prestation"
	rendezvousModule "cetime-core/internal/modules/rendezvous"
	"cetime-core/internal/shared/middleware"

	"go.uber.org/fx"
)

// NewRedisKeyGenerator crée le générateur de clés Redis
func NewRedisKeyGenerator(cfg *config.Config) *redis.RedisKeyGenerator {
	return redis.NewRedisKeyGenerator(cfg.Environment)
}

var AppModule = fx.Options(
	// Configuration (doit être fournie en premier)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),

	// Utilitaires partagés (après config, avant infrastructure)
	fx.Provide(NewRedisKeyGenerator),

	// Infrastructure
	database.Module,
	logger.Module,
	mailer.Module,

	// Middlewares partagés (après infrastructure, avant modules métier)
	middleware.Module,

	// Modules métier
	authModule.Module,
	notificationModule.Module,
	rendezvousModule.Module,
	prestationModule.Module,
	documentModule.Module,
	kpiModule.Module,

	// Bootstrap System - Providers
	fx.Provide(bootstrap.NewBootstrapExtensionManager),
	fx.Provide(bootstrap.NewBootstrapSchemaManager),
	fx.Provide(bootstrap.NewBootstrapSeedingManager),
	fx.Provide(bootstrap.NewBootstrapSystem),

	// Router
	fx.Provide(NewRouter),

	// Application
	fx.Provide(NewApplication),

	// Lifecycle management
	fx.Invoke(bootstrap.RegisterBootstrapLifecycle),
	fx.Invoke((*Application).Start),
)
