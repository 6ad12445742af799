package utils

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	StoreModeMemory = "memory"
	StoreModeRemote = "remote"
)

type R2Config struct {
	Bucket       string
	AccessKey    string
	SecretKey    string
	Endpoint     string // https://<account-id>.r2.cloudflarestorage.com
	PublicDomain string
}

func (c R2Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != "" && c.Endpoint != ""
}

type UploadConfig struct {
	MaxSizeMB  int
	Extensions []string
	MimeTypes  []string
}

type Config struct {
	Port           string
	StoreMode      string
	APIBaseURL     string
	HTTPTimeout    time.Duration
	SessionDBPath  string
	AdminEmail     string
	AdminPassword  string
	JWTSecret      string
	AccessTTL      time.Duration
	FlowTTL        time.Duration
	AllowedOrigins []string
	SeedDemoData   bool
	LogMode        string
	LogFile        string
	R2             R2Config
	Upload         UploadConfig
	DotEnvLoaded   bool // false when no .env file was read
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() Config {
	dotEnv := godotenv.Load() == nil

	return Config{
		DotEnvLoaded:   dotEnv,
		Port:           envDefault("PORT", "8080"),
		StoreMode:      strings.ToLower(envDefault("STORE_MODE", StoreModeMemory)),
		APIBaseURL:     strings.TrimRight(envDefault("API_BASE_URL", "http://localhost:5000/api"), "/"),
		HTTPTimeout:    time.Duration(positiveInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		SessionDBPath:  envDefault("SESSION_DB_PATH", "session.db"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTTL:      time.Duration(positiveInt("ACCESS_TOKEN_TTL_MINUTES", 12*60)) * time.Minute,
		FlowTTL:        time.Duration(positiveInt("ENQUIRY_FLOW_TTL_MINUTES", 30)) * time.Minute,
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		SeedDemoData:   cast.ToBool(envDefault("SEED_DEMO_DATA", "true")),
		LogMode:        envDefault("LOG_MODE", "development"),
		LogFile:        os.Getenv("LOG_FILE"),
		R2: R2Config{
			Bucket:       os.Getenv("R2_BUCKET"),
			AccessKey:    os.Getenv("R2_ACCESS_KEY_ID"),
			SecretKey:    os.Getenv("R2_SECRET_ACCESS_KEY"),
			Endpoint:     os.Getenv("R2_ENDPOINT"),
			PublicDomain: strings.TrimRight(os.Getenv("R2_PUBLIC_DOMAIN"), "/"),
		},
		Upload: UploadConfig{
			MaxSizeMB:  positiveInt("MAX_UPLOAD_SIZE_MB", 5),
			Extensions: splitList(envDefault("ALLOWED_FILE_EXTENSIONS", ".jpg,.jpeg,.png,.webp")),
			MimeTypes:  splitList(envDefault("ALLOWED_FILE_MIME_TYPES", "image/jpeg,image/png,image/webp")),
		},
	}
}

func envDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func positiveInt(key string, def int) int {
	n := cast.ToInt(os.Getenv(key))
	if n <= 0 {
		return def
	}
	return n
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
