package main

import "github.com/kelseyhightower/envconfig"

// Config optional settings from COMPARE_* environment variables, flags take precedence
type Config struct {
	First   bool   `envconfig:"FIRST"`
	Xlsx    string `envconfig:"XLSX"`
	HTML    string `envconfig:"HTML"`
	PNG     string `envconfig:"PNG"`
	Webhook string `envconfig:"WEBHOOK"`
}

func LoadConfig() (cfg Config, err error) {
	err = envconfig.Process("COMPARE", &cfg)
	return
}
