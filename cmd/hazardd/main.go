package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/epicabdou/hse-inspector/internal/devserver"
)

// hazardd is a local stand-in for the remote hazard-analysis service.
// It serves the same endpoints against an in-memory store, for local
// development and for the integration test suite.
func main() {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	token := os.Getenv("HAZARDD_TOKEN")

	maxUpload := int64(4_000_000)
	if v := os.Getenv("HAZARDD_MAX_UPLOAD"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatal("Invalid HAZARDD_MAX_UPLOAD:", err)
		}
		maxUpload = n
	}

	srv := devserver.New(token, maxUpload)

	log.Printf("hazardd listening on port %s", port)
	if token == "" {
		log.Printf("HAZARDD_TOKEN not set: accepting any bearer token")
	}
	log.Printf("Max upload size: %d bytes", maxUpload)

	if err := http.ListenAndServe(":"+port, srv.Router()); err != nil {
		log.Fatal(err)
	}
}
