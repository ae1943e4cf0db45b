package app

import (
	"time"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/utils"
)

type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	Port           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	RedisAddr      string
	AuditChannel   string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	return Config{
		ServiceName:    utils.GetEnv("SERVICE_NAME", "skillforge-backend", log),
		Environment:    utils.GetEnv("ENVIRONMENT", "development", log),
		Version:        utils.GetEnv("SERVICE_VERSION", "dev", log),
		Port:           utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		RedisAddr:      utils.GetEnv("REDIS_ADDR", "", log),
		AuditChannel:   utils.GetEnv("AUDIT_CHANNEL", "changelog", log),
	}
}
