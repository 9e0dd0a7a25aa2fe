// Command provision-admin creates the bootstrap admin account, or resets its password when it already exists.
// It is safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ArowuTest/lottery-ticket-backend/internal/config"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	mongorepo "github.com/ArowuTest/lottery-ticket-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/lottery-ticket-backend/internal/services"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/jwt"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/mongodb"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "directory containing config.yaml")
	username := flag.String("username", "", "admin username (default ADMIN_USERNAME)")
	password := flag.String("password", "", "admin password (default ADMIN_PASSWORD)")
	check := flag.Bool("check", false, "list existing admins and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := mongodb.NewClient(cfg.MongoDB.URI, cfg.MongoDB.ConnectTimeout)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db := client.Database(cfg.MongoDB.Database)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	auth := services.NewAuthService(mongorepo.NewAdminUserRepository(db), jwt.NewAdminTokenService(cfg.JWT.Secret, cfg.JWT.Expiry()))

	if *check {
		admins, err := auth.ListAdmins(ctx)
		if err != nil {
			log.Fatalf("Failed to list admins: %v", err)
		}
		if len(admins) == 0 {
			fmt.Println("No admin accounts found")
			return
		}
		for _, a := range admins {
			fmt.Printf("%s\t%s\tcreated %s\n", a.ID.Hex(), a.Username, a.CreatedAt.Format(time.RFC3339))
		}
		return
	}

	creds := &models.AdminCredentials{
		Username: config.FirstNonEmpty(*username, cfg.Bootstrap.AdminUsername),
		Password: config.FirstNonEmpty(*password, cfg.Bootstrap.AdminPassword),
	}
	if creds.Username == "" || creds.Password == "" {
		fmt.Fprintln(os.Stderr, "admin username and password are required (flags or ADMIN_USERNAME / ADMIN_PASSWORD)")
		os.Exit(2)
	}

	created, err := auth.EnsureAdmin(ctx, creds)
	if err != nil {
		log.Fatalf("Failed to provision admin: %v", err)
	}
	if created {
		log.Infof("Admin %q created", creds.Username)
	} else {
		log.Infof("Admin %q already existed; password reset", creds.Username)
	}
}
