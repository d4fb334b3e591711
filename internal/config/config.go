// Package config centralizes the kernel's tunables behind viper: scheduler
// concurrency caps, streaming-fabric capacities, and transport thresholds.
// Defaults are set in code; a YAML file and environment variables
// (QCORE_*) override them.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the fully resolved, typed view over viper's settings.
type Config struct {
	v *viper.Viper
}

// Load builds a Config with defaults applied, optionally reading path (if
// non-empty) as a YAML config file, and binding QCORE_-prefixed env vars.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("QCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return &Config{v: v}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	// execution engine
	v.SetDefault("engine.backend", "auto") // dense | mps | itsu | auto
	v.SetDefault("engine.max_dense_qubits", 12)
	v.SetDefault("engine.default_shots", 1024)

	// MPS backend
	v.SetDefault("mps.max_bond_dim", 64)
	v.SetDefault("mps.truncation_threshold", 1e-8)

	// gate kernels
	v.SetDefault("kernel.parallel_threshold", 1<<14)
	v.SetDefault("kernel.matrix_cache_capacity", 256)

	// scheduler
	v.SetDefault("scheduler.max_concurrent_quantum_jobs", 4)
	v.SetDefault("scheduler.max_concurrent_jobs", 4)

	// streaming fabric
	v.SetDefault("stream.replay_capacity", 1024)
	v.SetDefault("stream.backpressure_threshold", 64)
	v.SetDefault("stream.mailbox_capacity", 256)
	v.SetDefault("stream.stats_emit_interval_shots", 100)

	// Hybrid transport
	v.SetDefault("transport.upgrade_loss_threshold", 0.05)
	v.SetDefault("transport.downgrade_loss_threshold", 0.01)
	v.SetDefault("transport.evaluation_window", 5*time.Second)
	v.SetDefault("transport.udp_send_buffer_bytes", 8<<20)
	v.SetDefault("transport.udp_recv_buffer_bytes", 8<<20)

	// HTTP control plane
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.local_only", false)
}

func (c *Config) GetBool(key string) bool              { return c.v.GetBool(key) }
func (c *Config) GetInt(key string) int                { return c.v.GetInt(key) }
func (c *Config) GetFloat64(key string) float64        { return c.v.GetFloat64(key) }
func (c *Config) GetString(key string) string          { return c.v.GetString(key) }
func (c *Config) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }

// Set overrides a single key, mainly useful for tests that want a tiny
// replay capacity or backpressure threshold without a fixture file.
func (c *Config) Set(key string, value interface{}) { c.v.Set(key, value) }
