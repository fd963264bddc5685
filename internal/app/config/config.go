package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cetime-core/internal/infrastructure/database/mongodb"
	"cetime-core/internal/infrastructure/database/postgres"
	"cetime-core/internal/infrastructure/database/redis"

	"github.com/joho/godotenv"
)

// Uniquement variables d'environnement

// Config structure unifiée
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	MongoDB     MongoConfig
	JWT         JWTConfig
	Mailer      MailerConfig
	Storage     StorageConfig
	Roles       RolesConfig
	Prestation  PrestationConfig
	Logging     LoggingConfig
	CORS        CORSConfig
}

// ServerConfig configuration serveur HTTP
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"`
	Port         int           `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT"`
}

// DatabaseConfig configuration PostgreSQL
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST"`
	Port           int           `env:"DB_PORT"`
	Database       string        `env:"DB_NAME"`
	Username       string        `env:"DB_USERNAME"`
	Password       string        `env:"DB_PASSWORD"`
	MaxConnections int           `env:"DB_MAX_CONNECTIONS"`
	ConnectionTTL  time.Duration `env:"DB_CONNECTION_TTL"`
	QueryTimeout   time.Duration `env:"DB_QUERY_TIMEOUT"`
	SSLMode        string        `env:"DB_SSL_MODE"`
}

// RedisConfig configuration Redis
type RedisConfig struct {
	Host        string        `env:"REDIS_HOST"`
	Port        int           `env:"REDIS_PORT"`
	Password    string        `env:"REDIS_PASSWORD"`
	Database    int           `env:"REDIS_DATABASE"`
	MaxRetries  int           `env:"REDIS_MAX_RETRIES"`
	PoolSize    int           `env:"REDIS_POOL_SIZE"`
	PoolTimeout time.Duration `env:"REDIS_POOL_TIMEOUT"`
}

// MongoConfig configuration MongoDB (journal des notifications)
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT"`
	MaxPoolSize    int           `env:"MONGODB_MAX_POOL_SIZE"`
}

// JWTConfig configuration des jetons d'accès
type JWTConfig struct {
	Secret    string        `env:"JWT_SECRET"`
	ExpiresIn time.Duration `env:"JWT_EXPIRES_IN"`
	Issuer    string        `env:"JWT_ISSUER"`
}

// MailerConfig configuration transport SMTP
type MailerConfig struct {
	Host       string `env:"SMTP_HOST"`
	Port       int    `env:"SMTP_PORT"`
	Username   string `env:"SMTP_USERNAME"`
	Password   string `env:"SMTP_PASSWORD"`
	From       string `env:"MAIL_FROM"`
	AdminEmail string `env:"ADMIN_EMAIL"`
	Enabled    bool   `env:"MAIL_ENABLED"`
}

// StorageConfig configuration stockage fichiers (documents)
type StorageConfig struct {
	UploadDir     string `env:"UPLOAD_DIR"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE"`
}

// RolesConfig listes d'alias de groupes pour la résolution des rôles
type RolesConfig struct {
	AdminAliases  []string `env:"ROLE_ALIASES_ADMIN"`
	AgentAliases  []string `env:"ROLE_ALIASES_AGENT"`
	ClientAliases []string `env:"ROLE_ALIASES_CLIENT"`
}

// PrestationConfig valeurs par défaut des chaînes de résolution
type PrestationConfig struct {
	DefaultActivityID        int `env:"DEFAULT_ACTIVITY_ID"`
	DefaultAnalyticAccountID int `env:"DEFAULT_ANALYTIC_ACCOUNT_ID"`
	DefaultOfficeOrderID     int `env:"DEFAULT_OFFICE_ORDER_ID"`
	DefaultCountryID         int `env:"DEFAULT_COUNTRY_ID"`
}

// LoggingConfig configuration logging
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL"`
}

// CORSConfig configuration CORS
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `env:"CORS_MAX_AGE"`
}

// NewConfig charge la configuration depuis les variables d'environnement uniquement
func NewConfig() (*Config, error) {
	// Charger le fichier .env (optionnel)
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("[CONFIG] Warning: Fichier .env non trouvé: %v\n", err)
	}

	config := &Config{}

	// Déterminer environnement
	config.Environment = getEnv("APP_ENV", "development")

	// Charger configuration serveur
	config.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "localhost"),
		Port:         getEnvInt("SERVER_PORT", 4000),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30) * time.Second,
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30) * time.Second,
	}

	// Charger configuration database
	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnvInt("DB_PORT", 5432),
		Database:       getEnv("DB_NAME", "cetime"),
		Username:       getEnv("DB_USERNAME", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		MaxConnections: getEnvInt("DB_MAX_CONNECTIONS", 100),
		ConnectionTTL:  getEnvDuration("DB_CONNECTION_TTL", 300) * time.Second,
		QueryTimeout:   getEnvDuration("DB_QUERY_TIMEOUT", 30) * time.Second,
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
	}

	// Charger configuration Redis
	config.Redis = RedisConfig{
		Host:        getEnv("REDIS_HOST", "localhost"),
		Port:        getEnvInt("REDIS_PORT", 6379),
		Password:    getEnv("REDIS_PASSWORD", ""),
		Database:    getEnvInt("REDIS_DATABASE", 0),
		MaxRetries:  getEnvInt("REDIS_MAX_RETRIES", 3),
		PoolSize:    getEnvInt("REDIS_POOL_SIZE", 10),
		PoolTimeout: getEnvDuration("REDIS_POOL_TIMEOUT", 30) * time.Second,
	}

	// Charger configuration MongoDB
	defaultMongoURI := ""
	if config.Environment == "development" {
		defaultMongoURI = "mongodb://localhost:27017"
	}

	config.MongoDB = MongoConfig{
		URI:            getEnv("MONGODB_URI", defaultMongoURI),
		Database:       getEnv("MONGODB_DATABASE", "cetime_journal"),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10) * time.Second,
		MaxPoolSize:    getEnvInt("MONGODB_MAX_POOL_SIZE", 100),
	}

	// Charger configuration JWT (3h par défaut, comme la plateforme historique)
	config.JWT = JWTConfig{
		Secret:    getEnv("JWT_SECRET", ""),
		ExpiresIn: getEnvDuration("JWT_EXPIRES_IN", 10800) * time.Second,
		Issuer:    getEnv("JWT_ISSUER", "cetime-core"),
	}

	// Charger configuration mailer
	config.Mailer = MailerConfig{
		Host:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		Port:       getEnvInt("SMTP_PORT", 587),
		Username:   getEnv("SMTP_USERNAME", ""),
		Password:   getEnv("SMTP_PASSWORD", ""),
		From:       getEnv("MAIL_FROM", "CETIME Plateforme <noreply@cetime.tn>"),
		AdminEmail: getEnv("ADMIN_EMAIL", ""),
		Enabled:    getEnvBool("MAIL_ENABLED", true),
	}

	// Charger configuration stockage
	config.Storage = StorageConfig{
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE", 25<<20)),
	}

	// Charger les alias de groupes (résolution des rôles)
	config.Roles = RolesConfig{
		AdminAliases:  getEnvStringSlice("ROLE_ALIASES_ADMIN", []string{"admin", "administrator", "administrateur"}),
		AgentAliases:  getEnvStringSlice("ROLE_ALIASES_AGENT", []string{"agent", "employee", "employe", "employée", "internal user"}),
		ClientAliases: getEnvStringSlice("ROLE_ALIASES_CLIENT", []string{"client", "portal", "portal user", "public"}),
	}

	// Charger les valeurs par défaut des chaînes de résolution prestation
	config.Prestation = PrestationConfig{
		DefaultActivityID:        getEnvInt("DEFAULT_ACTIVITY_ID", 0),
		DefaultAnalyticAccountID: getEnvInt("DEFAULT_ANALYTIC_ACCOUNT_ID", 0),
		DefaultOfficeOrderID:     getEnvInt("DEFAULT_OFFICE_ORDER_ID", 0),
		DefaultCountryID:         getEnvInt("DEFAULT_COUNTRY_ID", 223),
	}

	// Charger configuration logging
	config.Logging = LoggingConfig{
		Level: getEnv("LOG_LEVEL", "debug"),
	}

	// Charger configuration CORS
	config.CORS = CORSConfig{
		AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}

	// Validation configuration critique
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("validation configuration échouée: %w", err)
	}

	fmt.Printf("[CONFIG] ✅ Configuration chargée pour environnement: %s\n", config.Environment)
	return config, nil
}

// Getters pour compatibilité avec l'ancien code
func (c *Config) GetDatabase() DatabaseConfig     { return c.Database }
func (c *Config) GetRedis() RedisConfig           { return c.Redis }
func (c *Config) GetMongoDB() MongoConfig         { return c.MongoDB }
func (c *Config) GetServer() ServerConfig         { return c.Server }
func (c *Config) GetJWT() JWTConfig               { return c.JWT }
func (c *Config) GetMailer() MailerConfig         { return c.Mailer }
func (c *Config) GetStorage() StorageConfig       { return c.Storage }
func (c *Config) GetRoles() RolesConfig           { return c.Roles }
func (c *Config) GetPrestation() PrestationConfig { return c.Prestation }
func (c *Config) GetLogging() LoggingConfig       { return c.Logging }
func (c *Config) GetCORS() CORSConfig             { return c.CORS }

// Providers pour les configurations infrastructure

func NewPostgresConfig(config *Config) *postgres.DatabaseConfig {
	return &postgres.DatabaseConfig{
		Host:     config.Database.Host,
		Port:     config.Database.Port,
		Database: config.Database.Database,
		Username: config.Database.Username,
		Password: config.Database.Password,
		SSLMode:  config.Database.SSLMode,
	}
}

func NewRedisConfig(config *Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Host:     config.Redis.Host,
		Port:     config.Redis.Port,
		Password: config.Redis.Password,
		Database: config.Redis.Database,
	}
}

func NewMongoConfig(config *Config) *mongodb.MongoConfig {
	return &mongodb.MongoConfig{
		URI:      config.MongoDB.URI,
		Database: config.MongoDB.Database,
	}
}

// validateConfig vérifie les paramètres critiques
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT invalide: %d", config.Server.Port)
	}

	if config.Database.Host == "" {
		return fmt.Errorf("DB_HOST requis")
	}

	if config.JWT.Secret == "" && config.Environment != "development" {
		return fmt.Errorf("JWT_SECRET requis hors développement")
	}

	if config.Mailer.Enabled && config.Mailer.AdminEmail == "" && config.Environment != "development" {
		return fmt.Errorf("ADMIN_EMAIL requis quand le mailer est activé")
	}

	return nil
}

// Helpers pour parsing variables d'environnement
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return time.Duration(intValue)
		}
	}
	return time.Duration(defaultSeconds)
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
