package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAddr               = ":8001"
	DefaultReadTimeout        = 10 * time.Second
	DefaultWriteTimeout       = 30 * time.Second
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultIngestBatchSize    = 500
	DefaultQueryLimit         = 100
	DefaultMaxLimit           = 1000
	DefaultAnalysisDays       = 30
	DefaultMaxAnalysisDays    = 365
	DefaultOverviewWindowDays = 30
	DefaultFlatThresholdPct   = 0.5
	DefaultQueryTimeout       = 5 * time.Second
)

// ApplyDefaults fills in zero-valued optional fields.
func (c *ServiceConfig) ApplyDefaults() {
	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Ingest defaults
	if c.Ingest.BatchSize == 0 {
		c.Ingest.BatchSize = DefaultIngestBatchSize
	}

	// Query defaults
	if c.Query.DefaultLimit == 0 {
		c.Query.DefaultLimit = DefaultQueryLimit
	}
	if c.Query.MaxLimit == 0 {
		c.Query.MaxLimit = DefaultMaxLimit
	}
	if c.Query.DefaultDays == 0 {
		c.Query.DefaultDays = DefaultAnalysisDays
	}
	if c.Query.MaxDays == 0 {
		c.Query.MaxDays = DefaultMaxAnalysisDays
	}
	if c.Query.OverviewWindowDays == 0 {
		c.Query.OverviewWindowDays = DefaultOverviewWindowDays
	}
	if c.Query.FlatThresholdPct == 0 {
		c.Query.FlatThresholdPct = DefaultFlatThresholdPct
	}
	if c.Query.Timeout == 0 {
		c.Query.Timeout = DefaultQueryTimeout
	}
}
