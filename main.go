package main

import (
	"log"
)

var (
	GitCommit string
	GitTag    string
	BuildTime string
)

// @title Bookstore Management API
// @version 1.0
// @description Online bookstore storefront api with catalog, cart, checkout and orders.
// @host localhost:8080
// @BasePath /
func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatal("application failed to initialized: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("application exited. check logs for more details.", err)
	}
}
