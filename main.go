package main

import (
	"github.com/SOUNDAR42/medicare-backend/configuration"
	"github.com/SOUNDAR42/medicare-backend/routes"
)

func Init() {
	configuration.ConfigDB()
	configuration.InitRedis()
}

func main() {
	//Perform application initialization
	Init()
	r := routes.SetupRoutes()

	//Run the engine in default port
	if err := r.Run(); err != nil {
		panic(err)
	}
}
