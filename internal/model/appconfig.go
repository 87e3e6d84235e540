package model

// AppConfig holds application-wide preferences and default packing options.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultAlgorithm       Algorithm `toml:"default_algorithm" json:"default_algorithm" yaml:"default_algorithm"`
	DefaultContainerWidth  float64   `toml:"default_container_width" json:"default_container_width" yaml:"default_container_width"`
	DefaultContainerHeight float64   `toml:"default_container_height" json:"default_container_height" yaml:"default_container_height"`
	DefaultPadding         float64   `toml:"default_padding" json:"default_padding" yaml:"default_padding"`
	DefaultGap             float64   `toml:"default_gap" json:"default_gap" yaml:"default_gap"`
	DefaultSortBy          SortBy    `toml:"default_sort_by" json:"default_sort_by" yaml:"default_sort_by"`

	// Application preferences
	LogLevel   string   `toml:"log_level" json:"log_level" yaml:"log_level"` // "debug", "info", "warn", "error"
	PageSize   string   `toml:"page_size" json:"page_size" yaml:"page_size"` // PDF page size: "A4", "Letter"
	RecentJobs []string `toml:"recent_jobs" json:"recent_jobs" yaml:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultAlgorithm:       AlgorithmMaxRects,
		DefaultContainerWidth:  800,
		DefaultContainerHeight: 600,
		DefaultPadding:         0,
		DefaultGap:             0,
		DefaultSortBy:          SortPriority,
		LogLevel:               "info",
		PageSize:               "A4",
		RecentJobs:             []string{},
	}
}

// ApplyToOptions copies the defaults into opts for every field opts leaves unset.
func (c AppConfig) ApplyToOptions(opts *PackingOptions) {
	if opts.ContainerWidth <= 0 {
		opts.ContainerWidth = c.DefaultContainerWidth
	}
	if opts.ContainerHeight <= 0 {
		opts.ContainerHeight = c.DefaultContainerHeight
	}
	if opts.Padding == 0 {
		opts.Padding = c.DefaultPadding
	}
	if opts.Gap == 0 {
		opts.Gap = c.DefaultGap
	}
	if opts.SortBy == "" {
		opts.SortBy = c.DefaultSortBy
	}
}

// ApplyToJob fills the job's algorithm and options from the defaults.
func (c AppConfig) ApplyToJob(job *Job) {
	if job.Algorithm == "" {
		job.Algorithm = c.DefaultAlgorithm
	}
	c.ApplyToOptions(&job.Options)
}
