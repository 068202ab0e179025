package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/iyulab/fileflux/internal/chunk"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer auth (local use).
	APIKey string

	// Upload limits
	MaxBodyBytes int64

	// Batch chunking
	BatchWorkers int

	// Chunking defaults
	DefaultStrategy string
	Chunking        chunk.Options
}

// Load reads configuration from the environment, consulting a local .env
// file first when present.
func Load() Config {
	_ = godotenv.Load()

	def := chunk.DefaultOptions()
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("FILEFLUX_API_KEY"),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 10485760), // 10MB

		BatchWorkers: envInt("BATCH_WORKERS", 4),

		DefaultStrategy: envOr("DEFAULT_STRATEGY", "hierarchical"),
		Chunking: chunk.Options{
			MaxChunkSize:        envInt("MAX_CHUNK_SIZE", def.MaxChunkSize),
			OverlapSize:         envInt("OVERLAP_SIZE", def.OverlapSize),
			MaxParentChunkSize:  envInt("MAX_PARENT_CHUNK_SIZE", def.MaxParentChunkSize),
			MaxChildChunkSize:   envInt("MAX_CHILD_CHUNK_SIZE", def.MaxChildChunkSize),
			MinSectionLength:    envInt("MIN_SECTION_LENGTH", def.MinSectionLength),
			MaxHierarchyDepth:   envInt("MAX_HIERARCHY_DEPTH", def.MaxHierarchyDepth),
			CreateSummaryChunks: envBool("CREATE_SUMMARY_CHUNKS", def.CreateSummaryChunks),
		},
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10485760
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = 4
	}
	cfg.Chunking = cfg.Chunking.WithDefaults()

	return cfg
}

func (c Config) Validate() error {
	if c.DefaultStrategy != "hierarchical" && c.DefaultStrategy != "sliding" {
		return fmt.Errorf("unknown DEFAULT_STRATEGY: %s", c.DefaultStrategy)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
