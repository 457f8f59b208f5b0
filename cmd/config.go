package cmd

import "time"

type Config struct {
	HTTPPort            string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	StoreTimeout        time.Duration
	JWTSecret           string
	IndexRepairSchedule string
}
