package main

import (
	"log"

	"github.com/Amankrah/ecodish365/config"
	"github.com/Amankrah/ecodish365/routes"
	"github.com/Amankrah/ecodish365/services"
)

func main() {
	config.InitDB()

	thresholds, err := config.LoadThresholds("")
	if err != nil {
		log.Fatalf("Failed to load HSR thresholds: %v", err)
	}

	cnf := services.NewCNFService(config.DB, services.NewMapCache())
	hsrSvc := services.NewHSRService(cnf, thresholds)

	r := routes.SetupRouter(cnf, hsrSvc)
	r.Run(":8080")
}
