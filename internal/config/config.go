package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string
	LogLevel string

	Env string // "dev" | "prod"

	// Storage selects the record/supplier store driver.
	Storage string // "memory" | "csv" | "sqlite"

	DBPath           string // sqlite driver
	RecordsCSVPath   string // csv driver
	SuppliersCSVPath string

	// Tenants is the enumerated store set, in display order.
	// StorePINs maps each tenant to its access PIN.
	Tenants   []string
	StorePINs map[string]string
	AdminPIN  string

	// Due scanner.
	DueLookaheadDays  int
	ScanIntervalHours int
}

// The legacy defaults ship so a bare dev start mirrors the old system.
// Production deployments override every PIN via file or env.
func defaults() Config {
	tenants := []string{
		"4g Comércio de Alimentos e Bebidas Ltda",
		"Tenro Plaza Niterói Ltda",
		"Gdm Cafés e Bolos Ltda",
		"Tenro Café Américas",
	}
	pins := map[string]string{
		tenants[0]: "1111",
		tenants[1]: "2222",
		tenants[2]: "3333",
		tenants[3]: "4444",
	}
	return Config{
		HTTPAddr:          ":8080",
		LogLevel:          "info",
		Env:               "dev",
		Storage:           "sqlite",
		DBPath:            "./data/agenda.db",
		RecordsCSVPath:    "./data/servicos.csv",
		SuppliersCSVPath:  "./data/fornecedores.csv",
		Tenants:           tenants,
		StorePINs:         pins,
		AdminPIN:          "9999",
		DueLookaheadDays:  7,
		ScanIntervalHours: 6,
	}
}

// Load resolves the effective configuration: defaults, then the optional
// YAML file named by AGENDA_CONFIG, then AGENDA_* environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("AGENDA_CONFIG")); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.HTTPAddr = getenvDefault("AGENDA_HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = getenvDefault("AGENDA_LOG_LEVEL", cfg.LogLevel)
	cfg.DBPath = getenvDefault("AGENDA_DB_PATH", cfg.DBPath)
	cfg.RecordsCSVPath = getenvDefault("AGENDA_RECORDS_CSV", cfg.RecordsCSVPath)
	cfg.SuppliersCSVPath = getenvDefault("AGENDA_SUPPLIERS_CSV", cfg.SuppliersCSVPath)
	cfg.AdminPIN = getenvDefault("AGENDA_ADMIN_PIN", cfg.AdminPIN)

	env := strings.ToLower(getenvDefault("AGENDA_ENV", cfg.Env))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}
	cfg.Env = env

	cfg.Storage = strings.ToLower(getenvDefault("AGENDA_STORAGE", cfg.Storage))

	// AGENDA_STORE_PINS is a JSON object {"store name": "pin", ...}; when set
	// it replaces the tenant set wholesale, like the legacy LOJA_PINS_JSON.
	if v := strings.TrimSpace(os.Getenv("AGENDA_STORE_PINS")); v != "" {
		pins := map[string]string{}
		if err := json.Unmarshal([]byte(v), &pins); err != nil {
			return fmt.Errorf("parse AGENDA_STORE_PINS: %w", err)
		}
		setPins(cfg, pins)
	}

	cfg.DueLookaheadDays = getenvInt("AGENDA_DUE_LOOKAHEAD_DAYS", cfg.DueLookaheadDays)
	cfg.ScanIntervalHours = getenvInt("AGENDA_SCAN_INTERVAL_HOURS", cfg.ScanIntervalHours)
	return nil
}

func validate(cfg Config) error {
	switch cfg.Storage {
	case "memory", "csv", "sqlite":
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage)
	}
	if len(cfg.StorePINs) == 0 {
		return fmt.Errorf("no stores configured")
	}
	return nil
}

// setPins replaces the tenant set from a name->pin map. Existing tenants
// keep their display position; new names append in sorted order so the
// result is deterministic.
func setPins(cfg *Config, pins map[string]string) {
	var tenants []string
	for _, t := range cfg.Tenants {
		if _, ok := pins[t]; ok {
			tenants = append(tenants, t)
		}
	}
	var added []string
	for name := range pins {
		if !containsString(tenants, name) {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	cfg.Tenants = append(tenants, added...)
	cfg.StorePINs = pins
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
