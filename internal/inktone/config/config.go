// Управление конфигурацией приложения из переменных окружения.
// Содержит структуру Config для хранения параметров и функцию ReadConfig для их загрузки из переменных окружения.
//
// Основные возможности:
//   - Загрузка конфигурации из переменных окружения с использованием тегов struct.
//   - Преобразование типов данных из переменных окружения (string, int, bool).
//   - Маскировка секретных значений (passwords, tokens) в логах.
//   - Предоставление значений по умолчанию и ограничение диапазонов параметров
//     (например, AutosaveDelayMS, SuggestDelayMS).
package config

import (
	"log/slog"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
)

type Config struct {
	ListenAddress string `env:"LISTEN_ADDRESS"`

	DatabasePath string `env:"DATABASE_PATH"`

	// Внешний сервис транслитерации (Google Input Tools совместимый)
	TransliterationURLRaw string `env:"TRANSLITERATION_URL"`
	TransliterationURL    *url.URL

	DefaultLanguage string `env:"DEFAULT_LANGUAGE"`

	AutosaveDelayMS int `env:"AUTOSAVE_DELAY_MS"`
	SuggestDelayMS  int `env:"SUGGEST_DELAY_MS"`

	MetricsEnable bool `env:"METRICS"`
}

// Поддерживаемые языки транслитерации. Пустая раскладка означает латиницу без подсказок.
var SupportedLanguages = []string{"en", "kn", "bn"}

const defaultTransliterationURL = "https://inputtools.google.com/request"

// ReadConfig загружает конфигурацию приложения из переменных окружения и выполняет валидацию.
// Возвращает структуру Config с загруженными параметрами. Если TRANSLITERATION_URL некорректен,
// приложение завершает работу с ошибкой. Значения задержек ограничиваются разумными диапазонами.
func ReadConfig() *Config {
	config := &Config{}

	envConfig("env", config)

	if config.ListenAddress == "" {
		config.ListenAddress = ":8080"
	}

	if config.DatabasePath == "" {
		config.DatabasePath = "inktone.db"
	}

	if config.TransliterationURLRaw == "" {
		config.TransliterationURLRaw = defaultTransliterationURL
	}
	var err error
	config.TransliterationURL, err = url.Parse(config.TransliterationURLRaw)
	if err != nil {
		slog.Error("TRANSLITERATION_URL incorrect", "err", err)
		os.Exit(1)
	}

	if !isSupportedLanguage(config.DefaultLanguage) {
		config.DefaultLanguage = "en"
	}

	if config.AutosaveDelayMS <= 0 || config.AutosaveDelayMS > 60000 {
		config.AutosaveDelayMS = 1000
	}

	if config.SuggestDelayMS <= 0 || config.SuggestDelayMS > 5000 {
		config.SuggestDelayMS = 200
	}

	return config
}

func isSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// Присваивает полям в переданной структуре значения переменных. Название переменной для каждого поля лежит в теге этого поля.
func envConfig(key string, s interface{}) {
	v := reflect.ValueOf(s).Elem()
	typeParam := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fName := typeParam.Field(i).Name
		fEnvTag := typeParam.Field(i).Tag.Get(key)

		raw, ok := os.LookupEnv(fEnvTag)
		if !ok || raw == "" {
			continue
		}

		slog.Info("Set config value",
			slog.String("key", typeParam.Name()+"."+fName),
			slog.String("value", maskSecret(fName, raw)),
			slog.String("source", "ENVIRONMENT"),
		)

		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(raw)
		case int:
			v.Field(i).SetInt(int64(intValue(raw)))
		case bool:
			v.Field(i).SetBool(boolValue(raw))
		}
	}
}

// maskSecret прячет в логах все, кроме первого и последнего символа,
// для полей с паролями, секретами и токенами.
func maskSecret(fieldName, value string) string {
	name := strings.ToLower(fieldName)
	if !strings.Contains(name, "pass") && !strings.Contains(name, "secret") && !strings.Contains(name, "token") {
		return value
	}

	runes := []rune(value)
	if len(runes) < 3 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}

// intValue разбирает целое значение переменной, ошибка дает 0.
func intValue(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

// boolValue разбирает логическое значение переменной, ошибка дает false.
func boolValue(raw string) bool {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}
