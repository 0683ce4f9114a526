package constants

import "time"

const (
	RequestTimeout  = 30 * time.Second
	DatabaseTimeout = 5 * time.Second
	BackupTimeout   = 15 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	SessionTTL = 30 * 24 * time.Hour
)

// RecentFormWindow is the trailing-games window used by the dashboard
// ("last 5 games" cards).
const RecentFormWindow = 5
