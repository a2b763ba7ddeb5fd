// Command seed resets the users collection and loads the canonical
// development data set. It goes through the service layer so seeded records
// get the same normalization and uniqueness treatment as API writes.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"

	"github.com/userdesk/user-management/internal/core/domain"
	"github.com/userdesk/user-management/internal/core/ports"
	"github.com/userdesk/user-management/internal/core/service"
	"github.com/userdesk/user-management/internal/infrastructure/config"
	mongodb "github.com/userdesk/user-management/internal/infrastructure/db/mongo"
	"github.com/userdesk/user-management/pkg/logger"
)

var seedUsers = []ports.CreateUserInput{
	{Name: "Varun Agrawal", Email: "varun@example.com", Contact: "+91-9999888777"},
	{Name: "Bunti Agrawal", Email: "bunti@example.com", Contact: "+91-8888777666"},
	{Name: "Rohit Sharma", Email: "rohit@example.com", Contact: "+91-7777666555"},
	{Name: "Priya Singh", Email: "priya@example.com", Contact: "+91-6666555444"},
	{Name: "Amit Kumar", Email: "amit@example.com", Contact: "+91-5555444333"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := db.Collection("users").Drop(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to drop users collection")
	}
	log.Info().Msg("cleared existing users")

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	svc := service.NewUserService(repo, log)
	created := 0
	for _, input := range seedUsers {
		if _, err := svc.CreateUser(ctx, input); err != nil {
			if errors.Is(err, domain.ErrEmailExists) {
				log.Warn().Str("email", input.Email).Msg("seed user already present, skipping")
				continue
			}
			log.Fatal().Err(err).Str("email", input.Email).Msg("failed to seed user")
		}
		created++
	}

	log.Info().Int("created", created).Msg("database seeding completed")
}
