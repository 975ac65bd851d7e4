package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root application configuration. Values resolve with the
// priority: config file -> environment variable -> default.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Mongo  MongoConfig  `yaml:"mongo"`
	Auth   AuthConfig   `yaml:"auth"`
}

type ServerConfig struct {
	Port          int    `yaml:"port"`
	AllowedOrigin string `yaml:"allowed_origin"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	Pokemons string `yaml:"pokemons_collection"`
	Users    string `yaml:"users_collection"`
}

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// GetPort returns the HTTP listen port with env fallback.
func (s *ServerConfig) GetPort() int {
	return getIntWithEnvFallback(s.Port, "POKEDEX_PORT", 3000)
}

// GetAllowedOrigin returns the CORS origin with env fallback.
func (s *ServerConfig) GetAllowedOrigin() string {
	return getStringWithEnvFallback(s.AllowedOrigin, "POKEDEX_ALLOWED_ORIGIN", "*")
}

// GetURI returns the MongoDB connection URI with env fallback.
func (m *MongoConfig) GetURI() string {
	return getStringWithEnvFallback(m.URI, "POKEDEX_MONGO_URI", "mongodb://localhost:27017")
}

// GetDatabase returns the MongoDB database name with env fallback.
func (m *MongoConfig) GetDatabase() string {
	return getStringWithEnvFallback(m.Database, "POKEDEX_MONGO_DB", "pokedex")
}

// GetPokemonsCollection returns the catalog collection name.
func (m *MongoConfig) GetPokemonsCollection() string {
	return getStringWithEnvFallback(m.Pokemons, "POKEDEX_POKEMONS_COLLECTION", "pokemons")
}

// GetUsersCollection returns the user collection name.
func (m *MongoConfig) GetUsersCollection() string {
	return getStringWithEnvFallback(m.Users, "POKEDEX_USERS_COLLECTION", "users")
}

// GetJWTSecret returns the token signing secret with env fallback.
// There is no default: an empty result must abort startup.
func (a *AuthConfig) GetJWTSecret() string {
	return getStringWithEnvFallback(a.JWTSecret, "POKEDEX_JWT_SECRET", "")
}

// GetTokenTTLHours returns the session token lifetime in hours.
func (a *AuthConfig) GetTokenTTLHours() int {
	return getIntWithEnvFallback(a.TokenTTLHours, "POKEDEX_TOKEN_TTL_HOURS", 12)
}

func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

func getStringWithEnvFallback(configValue string, envVar string, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultValue
}

// Load reads a YAML configuration file.
// If path == "", it tries ENV POKEDEX_CONFIG or returns nil, nil (defaults only).
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("POKEDEX_CONFIG")
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
