package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/export"
	"github.com/alexanderramin/studyplan/internal/scheduler"
)

// Config holds the defaults the CLI and HTTP server start from. Flags and
// request bodies override them.
type Config struct {
	BudgetHours float64
	Days        []string
	Variant     domain.Variant
	Thresholds  scheduler.Thresholds
	HTTPAddr    string
	LogMode     string
	LogUseCases bool
	ExportTitle string
	ChartWidth  int
	ChartHeight int
}

// DefaultConfig returns a Config with sensible defaults.
// Use-case logging is disabled by default.
func DefaultConfig() Config {
	return Config{
		BudgetHours: 20,
		Days:        domain.DefaultDays().Names(),
		Variant:     domain.VariantSimple,
		Thresholds:  scheduler.DefaultThresholds(),
		HTTPAddr:    ":8080",
		LogMode:     "development",
		LogUseCases: false,
		ExportTitle: export.DefaultTitle,
		ChartWidth:  export.DefaultChartWidth,
		ChartHeight: export.DefaultChartHeight,
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset or malformed values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDYPLAN_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.BudgetHours = f
		}
	}
	if v := os.Getenv("STUDYPLAN_DAYS"); v != "" {
		if days, err := domain.ParseDaySet(strings.Split(v, ",")); err == nil {
			cfg.Days = days.Names()
		}
	}
	if v := os.Getenv("STUDYPLAN_VARIANT"); v != "" {
		if variant, err := domain.ParseVariant(v); err == nil {
			cfg.Variant = variant
		}
	}
	if v := os.Getenv("STUDYPLAN_BREAK_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Thresholds.BreakAfterDailyHours = f
		}
	}
	if v := os.Getenv("STUDYPLAN_OVERLOAD_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Thresholds.MaxDailyHoursPerDay = f
		}
	}
	if v := os.Getenv("STUDYPLAN_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("STUDYPLAN_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("STUDYPLAN_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYPLAN_EXPORT_TITLE"); v != "" {
		cfg.ExportTitle = v
	}
	applyPositiveIntEnv(&cfg.ChartWidth, "STUDYPLAN_CHART_WIDTH")
	applyPositiveIntEnv(&cfg.ChartHeight, "STUDYPLAN_CHART_HEIGHT")

	return cfg
}

func applyPositiveIntEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}
