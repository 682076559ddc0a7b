// Package config loads typed configuration structs from environment
// variables, with optional .env bootstrap for local development.
//
// Each configuration type is parsed once per process and cached, so any
// package can declare its own config struct and call Load without
// coordinating initialization order:
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config
