// Command generate_demo creates a fresh demo database with sample library data.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"

	"github.com/readhub/library/internal/cli"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	cmd := cli.NewSeedCommand()
	cmd.DatabasePath = *dbPath
	cmd.Reset = true
	cmd.Bcrypt = true

	if err := cmd.Run(); err != nil {
		log.Fatalf("Failed to generate demo database: %v", err)
	}
}
