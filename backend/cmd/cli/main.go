package main

import (
	"fmt"
	"os"

	"socialgraph/backend/internal/graph"
	"socialgraph/backend/internal/menu"
	"socialgraph/backend/pkg/logger"
)

func main() {
	// The menu owns stdout, so keep log output away from the console.
	if err := logger.Init("production"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	store := graph.NewStore()
	menu.New(store, os.Stdin, os.Stdout).Run()
}
