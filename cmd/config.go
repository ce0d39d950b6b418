package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LockTTL       time.Duration

	TelegramToken       string
	TelegramAdminChatID int64

	AdminID       string
	AdminUsername string
	AdminEmail    string

	RelayBatchSize int
}
