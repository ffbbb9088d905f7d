package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-tiny-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory containing .json scene files")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Tiny Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/render to render the default scene", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
