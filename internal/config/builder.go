package config

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithDataDir sets the record directory. Empty keeps games in memory.
func (b *ConfigBuilder) WithDataDir(dir string) *ConfigBuilder {
	b.cfg.Storage.DataDir = dir
	return b
}

// WithCompression enables zstd-compressed records.
func (b *ConfigBuilder) WithCompression(enabled bool) *ConfigBuilder {
	b.cfg.Storage.Compress = enabled
	return b
}

// WithCacheSize sets the number of cached timelines.
func (b *ConfigBuilder) WithCacheSize(n int) *ConfigBuilder {
	b.cfg.Storage.CacheSize = n
	return b
}

// WithListenAddr sets the API listen address.
func (b *ConfigBuilder) WithListenAddr(addr string) *ConfigBuilder {
	b.cfg.Server.ListenAddr = addr
	return b
}

// WithMetrics enables the /metrics endpoint.
func (b *ConfigBuilder) WithMetrics(enabled bool) *ConfigBuilder {
	b.cfg.Server.MetricsEnabled = enabled
	return b
}

// WithSeedSample controls seeding an empty library.
func (b *ConfigBuilder) WithSeedSample(enabled bool) *ConfigBuilder {
	b.cfg.Server.SeedSample = enabled
	return b
}

// WithLogLevel sets the log level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithLogFormat sets the log format.
func (b *ConfigBuilder) WithLogFormat(format string) *ConfigBuilder {
	b.cfg.Log.Format = format
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSON = enabled
	return b
}

// WithWorkers sets the replay worker count.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}
