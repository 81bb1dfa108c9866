package config

import (
	kcfg "uciconv/sink/kafka"
)

// LoadKafkaSinkConfig delegates to the Kafka sink loader while centralizing
// loader entrypoints under internal/config.
func LoadKafkaSinkConfig(path string) (kcfg.Config, error) {
	return kcfg.LoadConfig(path)
}
