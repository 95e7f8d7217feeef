package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Dropbox  DropboxConfig
	Sheets   SheetsConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type DropboxConfig struct {
	Token     string
	IndexPath string
	// Root folders of the evaluation record areas.
	PendingDir   string
	CompletedDir string
	TrashDir     string
	RecordingDir string
}

type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	ScheduleTab     string
}

type AuthConfig struct {
	// Only corporate accounts may log in via Google.
	AllowedEmailDomain string
	// Employee ids allowed to bypass OAuth outside production.
	TestAccounts []string
	// bcrypt hashes for the instructor/admin gates.
	InstructorGateHash string
	AdminGateHash      string
	// Instructor addresses notified on new submissions.
	InstructorEmails []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Broadcast Eval"),
		},
		Dropbox: DropboxConfig{
			Token:        getEnv("DROPBOX_ACCESS_TOKEN", ""),
			IndexPath:    getEnv("DROPBOX_INDEX_PATH", "/evaluations/index.json"),
			PendingDir:   getEnv("DROPBOX_PENDING_DIR", "/evaluations/pending"),
			CompletedDir: getEnv("DROPBOX_COMPLETED_DIR", "/evaluations/completed"),
			TrashDir:     getEnv("DROPBOX_TRASH_DIR", "/evaluations/trash"),
			RecordingDir: getEnv("DROPBOX_RECORDING_DIR", "/recordings"),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getEnv("GOOGLE_SHEETS_CREDENTIALS_FILE", "credentials.json"),
			SpreadsheetID:   getEnv("SCHEDULE_SPREADSHEET_ID", ""),
			ScheduleTab:     getEnv("SCHEDULE_SHEET_TAB", "requests"),
		},
		Auth: AuthConfig{
			AllowedEmailDomain: getEnv("ALLOWED_EMAIL_DOMAIN", "example-air.com"),
			TestAccounts:       getEnvAsList("TEST_ACCOUNT_IDS", ""),
			InstructorGateHash: getEnv("INSTRUCTOR_GATE_HASH", ""),
			AdminGateHash:      getEnv("ADMIN_GATE_HASH", ""),
			InstructorEmails:   getEnvAsList("INSTRUCTOR_EMAILS", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
