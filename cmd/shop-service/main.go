package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcrm/internal/app"
	"github.com/vladislavdragonenkov/shopcrm/internal/version"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// parseFlags разбирает аргументы командной строки сервиса.
// Путь к файлу конфигурации можно также задать через SHOP_CONFIG.
func parseFlags(args []string) (configPath string, showVersion bool, err error) {
	fs := flag.NewFlagSet("shop-service", flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "path to YAML config file (optional)")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	if err = fs.Parse(args); err != nil {
		return "", false, err
	}
	if configPath == "" {
		configPath = os.Getenv("SHOP_CONFIG")
	}
	return configPath, showVersion, nil
}

func main() {
	setupLogger()

	configPath, showVersion, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		log.WithError(err).Fatal("не удалось загрузить конфигурацию")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":    cfg.HTTPAddr,
		"metrics_addr": cfg.MetricsAddr,
		"storage":      cfg.StorageDriver,
	}).Info("запускаем shop-service")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("shop-service остановлен")
}
