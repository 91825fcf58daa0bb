package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Storage       StorageConfig
	History       HistoryConfig
	Perf          PerfConfig
}

// StorageConfig bounds the persistent store.
type StorageConfig struct {
	// QuotaBytes is the practical capacity of the backing medium.
	QuotaBytes int64
	// WarnPercent is the high-water mark (0-100) at which the store
	// starts signalling quota pressure.
	WarnPercent float64
}

// HistoryConfig controls archiving of completed tournaments.
type HistoryConfig struct {
	RetainDays int
}

// PerfConfig controls the performance monitor.
type PerfConfig struct {
	SampleCapacity int
	SweepEverySec  int
}
