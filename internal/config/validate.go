package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *ServiceConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Query.DefaultLimit < 1 {
		return errors.New("query.default_limit must be >= 1")
	}
	if c.Query.MaxLimit < c.Query.DefaultLimit {
		return fmt.Errorf("query.max_limit (%d) cannot be below default_limit (%d)",
			c.Query.MaxLimit, c.Query.DefaultLimit)
	}
	if c.Query.DefaultDays < 2 {
		return errors.New("query.default_days must be >= 2")
	}
	if c.Query.MaxDays < c.Query.DefaultDays {
		return fmt.Errorf("query.max_days (%d) cannot be below default_days (%d)",
			c.Query.MaxDays, c.Query.DefaultDays)
	}
	if c.Query.OverviewWindowDays < 1 {
		return errors.New("query.overview_window_days must be >= 1")
	}
	if c.Query.FlatThresholdPct < 0 {
		return errors.New("query.flat_threshold_pct cannot be negative")
	}

	if c.Ingest.BatchSize < 1 {
		return errors.New("ingest.batch_size must be >= 1")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
