package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-engine/pkg/e"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Catalog *CatalogCfg
	Http    *HTTPConfig
	Cache   *CacheCfg
	Limiter *LimiterCfg
}

type CatalogCfg struct {
	Path          string            // Путь к файлу каталога
	Delimiter     rune              // Разделитель полей в файле
	CategoryNames map[string]string // Таблица префикс артикула -> имя категории
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type CacheCfg struct {
	DefaultTTL    time.Duration
	SweepInterval time.Duration
}

type LimiterCfg struct {
	MaxCalls int           // Максимум вызовов на идентичность в пределах окна
	Window   time.Duration // Длина скользящего окна
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	catalog, err := loadCatalogCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cache, err := loadCacheCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	limiter, err := loadLimiterCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Catalog: catalog,
		Http:    http,
		Cache:   cache,
		Limiter: limiter,
	}, nil
}

func loadCatalogCfg() (*CatalogCfg, error) {
	const (
		defaultPath      = "data/catalog.csv"
		defaultDelimiter = ","
	)

	path := getEnvOrDefault("CATALOG_PATH", defaultPath)

	delimStr := getEnvOrDefault("CATALOG_DELIMITER", defaultDelimiter)
	delim := []rune(delimStr)
	if len(delim) != 1 {
		return nil, fmt.Errorf("CATALOG_DELIMITER must be a single character, got %q", delimStr)
	}

	names, err := parseCategoryTable(os.Getenv("CATEGORY_TABLE"))
	if err != nil {
		return nil, e.Wrap("CATEGORY_TABLE", err)
	}

	return &CatalogCfg{
		Path:          path,
		Delimiter:     delim[0],
		CategoryNames: names,
	}, nil
}

// defaultCategoryNames — таблица имен категорий по умолчанию.
// Вынесена в конфигурацию, чтобы новые категории добавлялись без изменения кода.
func defaultCategoryNames() map[string]string {
	return map[string]string{
		"DSK": "Desks",
		"CHR": "Chairs",
		"TBL": "Tables",
		"CAB": "Cabinets",
		"LMP": "Lamps",
		"SHL": "Shelving",
		"ACC": "Accessories",
	}
}

// parseCategoryTable разбирает таблицу категорий в формате "PFX:Name,PFX:Name".
// Пустое значение означает таблицу по умолчанию; заданные пары дополняют и
// перекрывают значения по умолчанию.
func parseCategoryTable(raw string) (map[string]string, error) {
	names := defaultCategoryNames()
	if strings.TrimSpace(raw) == "" {
		return names, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		prefix, name, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(prefix) == "" || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid pair %q, expected PREFIX:Name", pair)
		}

		names[strings.ToUpper(strings.TrimSpace(prefix))] = strings.TrimSpace(name)
	}

	return names, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadCacheCfg(log logger.Logger) (*CacheCfg, error) {
	const (
		defaultTTL           = 3 * time.Minute
		defaultSweepInterval = time.Minute
	)

	ttl, err := parseDurationEnv("CACHE_TTL", defaultTTL)
	if err != nil {
		log.Errorf(err, "invalid CACHE_TTL")
		return nil, err
	}

	sweep, err := parseDurationEnv("CACHE_SWEEP_INTERVAL", defaultSweepInterval)
	if err != nil {
		log.Errorf(err, "invalid CACHE_SWEEP_INTERVAL")
		return nil, err
	}

	return &CacheCfg{
		DefaultTTL:    ttl,
		SweepInterval: sweep,
	}, nil
}

func loadLimiterCfg(log logger.Logger) (*LimiterCfg, error) {
	const (
		defaultMaxCalls = 30
		defaultWindow   = time.Minute
	)

	maxCalls, err := parseIntEnv("RATE_LIMIT_MAX", defaultMaxCalls)
	if err != nil {
		log.Errorf(err, "invalid RATE_LIMIT_MAX")
		return nil, err
	}

	window, err := parseDurationEnv("RATE_LIMIT_WINDOW", defaultWindow)
	if err != nil {
		log.Errorf(err, "invalid RATE_LIMIT_WINDOW")
		return nil, err
	}

	return &LimiterCfg{
		MaxCalls: maxCalls,
		Window:   window,
	}, nil
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
