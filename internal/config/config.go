package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		Host         string        `yaml:"host"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`

	Workers struct {
		PoolSize   int           `yaml:"pool_size"`
		QueueSize  int           `yaml:"queue_size"`
		RateLimit  int           `yaml:"rate_limit"` // requests per minute per domain
		Timeout    time.Duration `yaml:"timeout"`
		MaxRetries int           `yaml:"max_retries"`
	} `yaml:"workers"`

	Scraper struct {
		UserAgent         string        `yaml:"user_agent"`
		AcceptLanguage    string        `yaml:"accept_language"`
		NavigationTimeout time.Duration `yaml:"navigation_timeout"`
		ReadinessTimeout  time.Duration `yaml:"readiness_timeout"`
		HeadlessMode      bool          `yaml:"headless_mode"`
		StealthMode       bool          `yaml:"stealth_mode"`
		BlockResources    bool          `yaml:"block_resources"`
		Captcha           struct {
			APIKey          string        `yaml:"api_key"`
			Timeout         time.Duration `yaml:"timeout"`
			EnableAutoSolve bool          `yaml:"enable_auto_solve"`
		} `yaml:"captcha"`
	} `yaml:"scraper"`

	Firecrawl struct {
		APIKey  string        `yaml:"api_key"`
		APIURL  string        `yaml:"api_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"firecrawl"`

	Redis struct {
		URL            string        `yaml:"url"`
		Password       string        `yaml:"password"`
		DB             int           `yaml:"db"`
		Timeout        time.Duration `yaml:"timeout"`
		SnapshotTTL    time.Duration `yaml:"snapshot_ttl"`
		HistoryEntries int           `yaml:"history_entries"`
	} `yaml:"redis"`

	Refresh struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"refresh"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Workers.PoolSize = 10
	config.Workers.QueueSize = 100
	config.Workers.RateLimit = 60
	config.Workers.Timeout = 60 * time.Second
	config.Workers.MaxRetries = 2

	config.Scraper.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	config.Scraper.AcceptLanguage = "tr-TR,tr;q=0.9,en;q=0.8"
	config.Scraper.NavigationTimeout = 35 * time.Second
	config.Scraper.ReadinessTimeout = 8 * time.Second
	config.Scraper.HeadlessMode = true
	config.Scraper.StealthMode = true
	config.Scraper.BlockResources = true
	config.Scraper.Captcha.Timeout = 120 * time.Second
	config.Scraper.Captcha.EnableAutoSolve = false

	config.Firecrawl.APIURL = "https://api.firecrawl.dev"
	config.Firecrawl.Timeout = 60 * time.Second

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second
	config.Redis.SnapshotTTL = 24 * time.Hour
	config.Redis.HistoryEntries = 100

	config.Refresh.Enabled = false
	config.Refresh.Interval = 6 * time.Hour

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))
			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if userAgent := os.Getenv("SCRAPER_USER_AGENT"); userAgent != "" {
		c.Scraper.UserAgent = userAgent
	}

	if acceptLanguage := os.Getenv("SCRAPER_ACCEPT_LANGUAGE"); acceptLanguage != "" {
		c.Scraper.AcceptLanguage = acceptLanguage
	}

	if navTimeout := os.Getenv("SCRAPER_NAVIGATION_TIMEOUT"); navTimeout != "" {
		if timeout, err := time.ParseDuration(navTimeout); err == nil {
			c.Scraper.NavigationTimeout = timeout
		}
	}

	if readyTimeout := os.Getenv("SCRAPER_READINESS_TIMEOUT"); readyTimeout != "" {
		if timeout, err := time.ParseDuration(readyTimeout); err == nil {
			c.Scraper.ReadinessTimeout = timeout
		}
	}

	if headless := os.Getenv("SCRAPER_HEADLESS"); headless != "" {
		c.Scraper.HeadlessMode = headless == "true" || headless == "1"
	}

	if captchaAPIKey := os.Getenv("CAPTCHA_API_KEY"); captchaAPIKey != "" {
		c.Scraper.Captcha.APIKey = captchaAPIKey
	}

	// Also support 2CAPTCHA_API_KEY for compatibility
	if captchaAPIKey := os.Getenv("2CAPTCHA_API_KEY"); captchaAPIKey != "" {
		c.Scraper.Captcha.APIKey = captchaAPIKey
	}

	if firecrawlAPIKey := os.Getenv("FIRECRAWL_API_KEY"); firecrawlAPIKey != "" {
		c.Firecrawl.APIKey = firecrawlAPIKey
	}

	if firecrawlAPIURL := os.Getenv("FIRECRAWL_API_URL"); firecrawlAPIURL != "" {
		c.Firecrawl.APIURL = firecrawlAPIURL
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if snapshotTTL := os.Getenv("REDIS_SNAPSHOT_TTL"); snapshotTTL != "" {
		if ttl, err := time.ParseDuration(snapshotTTL); err == nil {
			c.Redis.SnapshotTTL = ttl
		}
	}

	if refreshEnabled := os.Getenv("REFRESH_ENABLED"); refreshEnabled != "" {
		c.Refresh.Enabled = refreshEnabled == "true" || refreshEnabled == "1"
	}

	if refreshInterval := os.Getenv("REFRESH_INTERVAL"); refreshInterval != "" {
		if interval, err := time.ParseDuration(refreshInterval); err == nil {
			c.Refresh.Interval = interval
		}
	}

	if poolSize := os.Getenv("WORKER_POOL_SIZE"); poolSize != "" {
		if size, err := strconv.Atoi(poolSize); err == nil {
			c.Workers.PoolSize = size
		}
	}

	if rateLimit := os.Getenv("WORKER_RATE_LIMIT"); rateLimit != "" {
		if limit, err := strconv.Atoi(rateLimit); err == nil {
			c.Workers.RateLimit = limit
		}
	}
}
