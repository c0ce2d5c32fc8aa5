package config

import "fmt"

type StorageType string

const STORAGE_TYPE_POSTGRES StorageType = "postgres"
const STORAGE_TYPE_INMEM StorageType = "memory"

type Config struct {
	HttpPort        int
	StorageType     StorageType
	PostgresConfig  PostgresConfig
	RedisConfig     RedisCacheConfig
	JwtSecret       string
	SessionTTLHours int
	// DevTenantId injects a fixed principal when no session is present.
	// Development only; empty means sessions are mandatory.
	DevTenantId string
	DevUserId   string
	CorsOrigins []string
}

type PostgresConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

type RedisCacheConfig struct {
	Addrs     []string
	Namespace string
}

func (c Config) HttpAddr() string {
	return fmt.Sprintf(":%d", c.HttpPort)
}
