package config

import (
	"fmt"
	"os"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// fileConfig is the YAML shape of an agenda config file. Every field is
// optional; omitted fields keep their current value.
//
//	http_addr: ":8080"
//	env: prod
//	storage: sqlite
//	admin_pin: "9999"
//	stores:
//	  - name: Tenro Café Américas
//	    pin: "4444"
type fileConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`
	Env      string `yaml:"env"`
	Storage  string `yaml:"storage"`

	DBPath           string `yaml:"db_path"`
	RecordsCSVPath   string `yaml:"records_csv"`
	SuppliersCSVPath string `yaml:"suppliers_csv"`

	AdminPIN string       `yaml:"admin_pin"`
	Stores   []storeEntry `yaml:"stores"`

	DueLookaheadDays  *int `yaml:"due_lookahead_days"`
	ScanIntervalHours *int `yaml:"scan_interval_hours"`
}

type storeEntry struct {
	Name string `yaml:"name"`
	PIN  string `yaml:"pin"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.HTTPAddr, fc.HTTPAddr)
	setIf(&cfg.LogLevel, fc.LogLevel)
	setIf(&cfg.Env, fc.Env)
	setIf(&cfg.Storage, strings.ToLower(fc.Storage))
	setIf(&cfg.DBPath, fc.DBPath)
	setIf(&cfg.RecordsCSVPath, fc.RecordsCSVPath)
	setIf(&cfg.SuppliersCSVPath, fc.SuppliersCSVPath)
	setIf(&cfg.AdminPIN, fc.AdminPIN)

	if len(fc.Stores) > 0 {
		// A stores block replaces the tenant set wholesale.
		tenants := make([]string, 0, len(fc.Stores))
		pins := make(map[string]string, len(fc.Stores))
		for _, s := range fc.Stores {
			name := strings.TrimSpace(s.Name)
			if name == "" {
				continue
			}
			tenants = append(tenants, name)
			pins[name] = strings.TrimSpace(s.PIN)
		}
		cfg.Tenants = tenants
		cfg.StorePINs = pins
	}

	if fc.DueLookaheadDays != nil {
		cfg.DueLookaheadDays = *fc.DueLookaheadDays
	}
	if fc.ScanIntervalHours != nil {
		cfg.ScanIntervalHours = *fc.ScanIntervalHours
	}
	return nil
}

func setIf(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
