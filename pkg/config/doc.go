// Package config loads typed configuration structs from environment
// variables (github.com/caarlos0/env) with optional .env support
// (github.com/joho/godotenv). Every package in this module declares its own
// Config struct; the server binary loads them through Load or MustLoad.
package config
