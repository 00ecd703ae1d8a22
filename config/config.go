package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port      string       `yaml:"port"`
	Timezone  string       `yaml:"timezone"`
	DBPath    string       `yaml:"db_path"`
	JWTSecret string       `yaml:"jwt_secret"`
	Admin     AdminConfig  `yaml:"admin"`
	Backup    BackupConfig `yaml:"backup"`
	Log       LogConfig    `yaml:"log"`
}

// AdminConfig seeds the first administrator on an empty user table.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type BackupConfig struct {
	FileName        string        `yaml:"file_name"`
	CredentialsFile string        `yaml:"credentials_file"`
	FolderID        string        `yaml:"folder_id"`
	LocalDir        string        `yaml:"local_dir"` // used when no credentials file is set
	Interval        time.Duration `yaml:"interval"`  // 0 disables the server ticker
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Default() AppConfig {
	return AppConfig{
		Port:      "8080",
		Timezone:  "Asia/Tokyo",
		DBPath:    "nippo.db",
		JWTSecret: "nippo-dev-secret",
		Backup: BackupConfig{
			FileName: "nippo_backup.db",
			LocalDir: "backups",
		},
		Log: LogConfig{Level: "info", Console: true, MaxSizeMB: 50, MaxBackups: 7, MaxAgeDays: 14},
	}
}

// Load builds the config from defaults, an optional YAML file, .env and the
// process environment, in that order of precedence (last wins).
func Load(path string) AppConfig {
	cfg := Default()

	if path != "" {
		if data, err := os.ReadFile(path); err != nil {
			log.Printf("[cfg] read %s: %v", path, err)
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("[cfg] parse %s: %v", path, err)
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	override(&cfg.Port, "PORT")
	override(&cfg.Timezone, "TZ")
	override(&cfg.DBPath, "DB_PATH")
	override(&cfg.JWTSecret, "JWT_SECRET")
	override(&cfg.Admin.Username, "ADMIN_USERNAME")
	override(&cfg.Admin.Password, "ADMIN_PASSWORD")
	override(&cfg.Backup.FileName, "BACKUP_FILE_NAME")
	override(&cfg.Backup.CredentialsFile, "BACKUP_CREDENTIALS_FILE")
	override(&cfg.Backup.FolderID, "BACKUP_FOLDER_ID")
	override(&cfg.Backup.LocalDir, "BACKUP_LOCAL_DIR")
	overrideDuration(&cfg.Backup.Interval, "BACKUP_INTERVAL")
	override(&cfg.Log.Level, "LOG_LEVEL")
	override(&cfg.Log.File, "LOG_FILE")
	overrideInt(&cfg.Log.MaxSizeMB, "LOG_MAX_SIZE_MB")

	log.Printf("[cfg] port=%s db=%s backup_folder=%s backup_interval=%s", cfg.Port, cfg.DBPath, cfg.Backup.FolderID, cfg.Backup.Interval)
	return cfg
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func overrideDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
