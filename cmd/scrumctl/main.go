// scrumctl is the administrative CLI: it manages user accounts directly
// against the database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nvoloshyn/scrum-api/internal/config"
	"github.com/nvoloshyn/scrum-api/internal/database"
	"github.com/nvoloshyn/scrum-api/internal/repository"
	"github.com/nvoloshyn/scrum-api/internal/services"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: scrumctl <command> [flags]

Commands:
  add-user     -username <name> -password <pw> [-full-name <name>] [-email <email>]
  delete-user  -username <name>
`)
	os.Exit(2)
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database.GetDB())
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)

	switch os.Args[1] {
	case "add-user":
		fs := flag.NewFlagSet("add-user", flag.ExitOnError)
		username := fs.String("username", "", "username (required)")
		password := fs.String("password", "", "password (required)")
		fullName := fs.String("full-name", "", "full name")
		email := fs.String("email", "", "email address")
		fs.Parse(os.Args[2:])

		if *username == "" || *password == "" {
			fs.Usage()
			os.Exit(2)
		}

		user, err := authService.CreateUser(*username, *password, *fullName, *email)
		if err != nil {
			log.Fatalf("Failed to add user: %v", err)
		}
		log.Printf("Created user %q (id %d)", user.Username, user.ID)

	case "delete-user":
		fs := flag.NewFlagSet("delete-user", flag.ExitOnError)
		username := fs.String("username", "", "username (required)")
		fs.Parse(os.Args[2:])

		if *username == "" {
			fs.Usage()
			os.Exit(2)
		}

		if err := authService.DeleteUser(*username); err != nil {
			log.Fatalf("Failed to delete user: %v", err)
		}
		log.Printf("Deleted user %q", *username)

	default:
		usage()
	}
}
