package middleware

import (
	"go.uber.org/fx"

	"cetime-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers des middlewares
var Module = fx.Options(
	// Middleware d'authentification JWT
	fx.Provide(auth.NewJWTMiddleware),
)
