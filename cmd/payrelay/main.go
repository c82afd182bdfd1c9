package main

import (
	"fmt"

	"github.com/denmor86/ya-payrelay/internal/app"
	"github.com/denmor86/ya-payrelay/internal/config"
	"github.com/denmor86/ya-payrelay/internal/logger"
)

func main() {
	// загрузка конфига
	config := config.NewConfig()
	// инициализация логгера
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		panic(fmt.Sprintf("can't initialize logger: %s ", err.Error()))
	}
	defer logger.Sync()

	app.Run(config)
}
