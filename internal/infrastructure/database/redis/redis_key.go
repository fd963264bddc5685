package redis

import (
	"fmt"
	"regexp"
	"strings"
)

// RedisKeyGenerator génère et valide les clés Redis selon les conventions CETIME
type RedisKeyGenerator struct {
	environment string
}

// NewRedisKeyGenerator crée une nouvelle instance du générateur
func NewRedisKeyGenerator(environment string) *RedisKeyGenerator {
	if environment == "" {
		environment = "development"
	}
	return &RedisKeyGenerator{environment: environment}
}

// RedisKeyPattern définit les patterns standards des clés
// Pattern: cetime_{env}_{domain}_{context}:{identifier}
type RedisKeyPattern struct {
	Domain  string // auth, notification, etc.
	Context string // ratelimit, journal, etc.
	TTL     int    // TTL en secondes, 0 = pas d'expiration
}

// Patterns prédéfinis selon les conventions du projet
// Note : seuls les patterns réellement implémentés sont listés ici
var RedisKeyPatterns = map[string]RedisKeyPattern{
	// Compteur d'échecs de connexion par login (fenêtre 15 minutes)
	"auth_ratelimit": {Domain: "auth", Context: "ratelimit", TTL: 900},
}

// GenerateKey génère une clé Redis selon la convention : cetime_{env}_{domain}_{context}:{identifier}
func (rkg *RedisKeyGenerator) GenerateKey(patternName string, identifier ...string) (string, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}

	prefix := fmt.Sprintf("cetime_%s_%s_%s", rkg.environment, pattern.Domain, pattern.Context)

	if len(identifier) > 0 {
		identifierStr := strings.Join(identifier, "_")
		return fmt.Sprintf("%s:%s", prefix, identifierStr), nil
	}

	// Si pas d'identifier, retourner juste le préfixe (pour les clés singleton)
	return prefix, nil
}

// GetTTL récupère le TTL d'un pattern
func (rkg *RedisKeyGenerator) GetTTL(patternName string) (int, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return 0, fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	return pattern.TTL, nil
}

// ValidateKey valide qu'une clé respecte les conventions
func (rkg *RedisKeyGenerator) ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("clé vide")
	}

	if len(key) > 250 {
		return fmt.Errorf("clé trop longue (max 250 caractères): %d", len(key))
	}

	validKeyRegex := regexp.MustCompile(`^[a-zA-Z0-9_:@.\-]+$`)
	if !validKeyRegex.MatchString(key) {
		return fmt.Errorf("clé contient des caractères invalides: %s", key)
	}

	if !strings.HasPrefix(key, "cetime_") {
		return fmt.Errorf("clé doit commencer par 'cetime_': %s", key)
	}

	return nil
}

// ListAllPatterns retourne tous les patterns disponibles
func (rkg *RedisKeyGenerator) ListAllPatterns() map[string]RedisKeyPattern {
	return RedisKeyPatterns
}

// GenerateWildcardPattern génère un pattern wildcard pour recherche par domaine/context
func (rkg *RedisKeyGenerator) GenerateWildcardPattern(domain, context string) string {
	return fmt.Sprintf("cetime_%s_%s_%s:*", rkg.environment, domain, context)
}
