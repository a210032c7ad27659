package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once from the environment at startup. Defaults target a
// local docker-compose setup.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// JWT sessions are stateless and not refreshable
	JWTSecret string
	JWTTTL    time.Duration

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Migrations
	MigrationsDir string

	// Page fetching for metadata extraction
	FetchTimeout   time.Duration
	FetchMaxBytes  int64
	FetchUserAgent string

	// Remote summarization (Jina reader). Disabled when JinaAPIKey is empty.
	JinaAPIKey       string
	JinaEndpoint     string
	JinaSummaryField string // dotted path into the JSON response
	SummaryTimeout   time.Duration

	// Elasticsearch bookmark search. Disabled when ElasticsearchAddrs is empty.
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESBookmarksIndex   string

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// Links for emails
	CompanyName string
	SupportURL  string
	AppURL      string

	// Email sending toggle
	MailSendEnabled bool

	// Prometheus metrics at /api/debug/metrics
	DebugMetricsEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// parsed reads key with parse, keeping def when unset or malformed.
func parsed[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", key, raw, err)
		return def
	}
	return v
}

func getbool(key string, def bool) bool { return parsed(key, def, strconv.ParseBool) }

func getdur(key string, def time.Duration) time.Duration {
	return parsed(key, def, time.ParseDuration)
}

func getint32(key string, def int32) int32 {
	return parsed(key, def, func(s string) (int32, error) {
		n, err := strconv.ParseInt(s, 10, 32)
		return int32(n), err
	})
}

func getbytes(key string, def int64) int64 {
	return parsed(key, def, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "link-saver"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3001"),
		GinMode: getenv("GIN_MODE", "release"),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "linksaver"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    getint32("DB_MAX_CONNS", 10),
		DBMinConns:    getint32("DB_MIN_CONNS", 2),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		JWTSecret: getenv("JWT_SECRET", "devsecret"),
		JWTTTL:    getdur("JWT_TTL", 7*24*time.Hour),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		FetchTimeout:   getdur("FETCH_TIMEOUT", 10*time.Second),
		FetchMaxBytes:  getbytes("FETCH_MAX_BYTES", 5<<20),
		FetchUserAgent: getenv("FETCH_USER_AGENT", "LinkSaverBot/1.0 (+https://github.com/oksasatya/go-link-saver)"),

		JinaAPIKey:       getenv("JINA_API_KEY", ""),
		JinaEndpoint:     getenv("JINA_ENDPOINT", "https://r.jina.ai/"),
		JinaSummaryField: getenv("JINA_SUMMARY_FIELD", "summary"),
		SummaryTimeout:   getdur("SUMMARY_TIMEOUT", 10*time.Second),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESBookmarksIndex:   getenv("ES_BOOKMARKS_INDEX", "bookmarks"),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		CompanyName: getenv("COMPANY_NAME", "Link Saver"),
		SupportURL:  getenv("SUPPORT_URL", ""),
		AppURL:      getenv("APP_URL", "http://localhost:3000"),

		// Welcome emails are opt-in
		MailSendEnabled: getbool("MAIL_SEND_ENABLED", false),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// PostgresDSN returns a pgx URL DSN. Credentials are escaped.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

// SummarizerEnabled reports whether a remote summarization credential is configured.
func (c *Config) SummarizerEnabled() bool {
	return strings.TrimSpace(c.JinaAPIKey) != ""
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
