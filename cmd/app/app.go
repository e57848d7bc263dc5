package main

import (
	"os"

	"github.com/DRSN-tech/catalog-engine/internal/app"
	config "github.com/DRSN-tech/catalog-engine/internal/cfg"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
)

//	@title			Catalog Matching & Order Validation Engine API
//	@version		1.0
//	@description	Поиск по каталогу, подсказки и проверка строк заказа, извлеченных из писем
//	@host			localhost:8080
//	@BasePath		/api/v1
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
