package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jotapp/jot/internal/jot/app"
	"github.com/jotapp/jot/pkg/cryptox"
)

func main() {
	// "jot hash <password>" prints an argon2id hash for provisioning users.
	if len(os.Args) == 3 && os.Args[1] == "hash" {
		hash, err := cryptox.HashPassword(os.Args[2])
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
