package main

import (
	"github.com/corray333/commerce/internal/app"
	"github.com/corray333/commerce/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
