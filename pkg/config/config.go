package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

func ProvideConfig() Config {
	return Config{
		BasePath:                     requireEnv("BASE_PATH"),
		AllowedOrigin:                requireEnv("CORS_ALLOWED_ORIGIN"),
		PrivateKeyFile:               requireEnv("PRIVATE_KEY_FILE"),
		AccessTokenExpirationSeconds: requireEnvAsInt("ACCESS_TOKEN_EXPIRATION_SECONDS"),
		JaegerEndpoint:               requireEnv("JAEGER_ENDPOINT"),
		Postgresql: Postgresql{
			Host:         requireEnv("DATABASE_HOST"),
			Port:         requireEnvAsInt("DATABASE_PORT"),
			Username:     requireEnv("DATABASE_USERNAME"),
			Password:     requireEnv("DATABASE_PASSWORD"),
			DatabaseName: requireEnv("DATABASE_NAME"),
		},
		RabbitMq: rabbitmq{
			Host:     requireEnv("RABBITMQ_HOST"),
			Port:     requireEnvAsInt("RABBITMQ_PORT"),
			Username: requireEnv("RABBITMQ_USERNAME"),
			Password: requireEnv("RABBITMQ_PASSWORD"),
		},
		Smtp: smtp{
			Host:     requireEnv("SMTP_HOST"),
			Port:     requireEnvAsInt("SMTP_PORT"),
			Username: requireEnv("SMTP_USERNAME"),
			Password: requireEnv("SMTP_PASSWORD"),
			From:     requireEnv("SMTP_FROM"),
		},
		AdminUser: adminUser{
			Email:    requireEnv("ADMIN_USER_EMAIL"),
			Password: requireEnv("ADMIN_USER_PASSWORD"),
		},
	}
}

type Config struct {
	BasePath                     string
	AllowedOrigin                string
	PrivateKeyFile               string
	AccessTokenExpirationSeconds int
	JaegerEndpoint               string
	Postgresql                   Postgresql
	RabbitMq                     rabbitmq
	Smtp                         smtp
	AdminUser                    adminUser
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

type rabbitmq struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (r rabbitmq) GetUrl() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.Username, r.Password, r.Host, r.Port)
}

type smtp struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type adminUser struct {
	Email    string
	Password string
}

func requireEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("Can't find environment variable: %s\n", key)
	}
	return value
}

func requireEnvAsInt(key string) int {
	valueStr := requireEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as integer: %s", err.Error())
	}
	return value
}
