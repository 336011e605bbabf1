// Основной пакет приложения Inktone. Отвечает за запуск приложения, инициализацию базы данных, миграцию моделей и запуск основного сервера приложения.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/inktone/inktone.go/internal/inktone"
	"github.com/inktone/inktone.go/internal/inktone/config"
	"github.com/inktone/inktone.go/internal/inktone/dao"
)

var version string = "DEV"

var models = []any{&dao.Post{}, &dao.Setting{}}

func main() {
	noMigration := flag.Bool("noMigration", false, "Turn off DB migration")
	trace := flag.Bool("trace", false, "Verbose logs")
	flag.Parse()

	PrintBanner()

	cfg := config.ReadConfig()

	if *trace {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Set prod log format
	if version != "DEV" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})))
	}

	slog.Info("Inktone start.")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		slog.Error("Fail init DB connection", "err", err)
		os.Exit(1)
	}

	if !*noMigration {
		if err := db.AutoMigrate(models...); err != nil {
			slog.Error("Fail migrate models", "err", err)
			os.Exit(1)
		}
	}

	inktone.Server(db, cfg, version)
}

// PrintBanner выводит заголовок приложения с версией. Использует color codes для выделения версии.
func PrintBanner() {
	banner := `
 ___       _    _
|_ _|_ __ | | _| |_ ___  _ __   ___
 | || '_ \| |/ / __/ _ \| '_ \ / _ \
 | || | | |   <| || (_) | | | |  __/
|___|_| |_|_|\_\\__\___/|_| |_|\___| %s
Block editor with slash commands and transliteration
----------------------------------------------------
`
	colorReset := "\033[0m"
	colorYellow := "\033[33m"

	formattedVersion := version
	if version == "DEV" {
		formattedVersion = colorYellow + version + colorReset
	}

	fmt.Printf(banner, formattedVersion)
}
