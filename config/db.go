package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-inventory/models"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	cfg := baseMySQLConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Addr = net.JoinHostPort(u.Hostname(), port)
	cfg.DBName = dbName
	for k, v := range u.Query() {
		if len(v) > 0 {
			cfg.Params[k] = v[0]
		}
	}
	return cfg.FormatDSN(), nil
}

func baseMySQLConfig() *mysqldrv.Config {
	cfg := mysqldrv.NewConfig()
	cfg.Net = "tcp"
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

// resolveMySQLDSN prefers MYSQL_URL / DATABASE_URL and falls back to the
// discrete DB_* variables.
func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	cfg := baseMySQLConfig()
	cfg.User = envOrDefault("DB_USER", "root")
	cfg.Passwd = os.Getenv("DB_PASS")
	cfg.Addr = net.JoinHostPort(envOrDefault("DB_HOST", "127.0.0.1"), envOrDefault("DB_PORT", "3306"))
	cfg.DBName = envOrDefault("DB_NAME", "hotel_db")
	return cfg.FormatDSN(), nil
}

// ConnectDatabase opens MySQL through gorm and migrates the schema.
func ConnectDatabase(cfg Config, zl zerolog.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if zl.GetLevel() <= zerolog.DebugLevel {
		level = logger.Info
	}
	gormLogger := logger.New(
		log.New(zl.With().Str("component", "gorm").Logger(), "", 0),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	// parent -> child order
	if err := db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.Reservation{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}
