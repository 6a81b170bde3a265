package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"truckmap/config"
	"truckmap/di"
)

func main() {
	env := os.Getenv("TRUCKMAP_ENV")
	if env == "" {
		env = "prod"
	}
	container := di.NewContainer(env)

	fmt.Println("refreshing!")
	if err := container.VendorsRefresherService.RefreshVendorsData(); err != nil {
		log.Println("[MAIN] Initial vendors refresh failed:", err)
	}
	fmt.Println("starting periodic job!")
	container.VendorsRefresherService.StartPeriodicJob(config.VENDORS_REFRESHER_SCHEDULE_MINUTES * time.Minute)

	fmt.Println("starting server!")
	container.TruckMapHttpServer.Start()
	fmt.Println("server stopped!")
}
