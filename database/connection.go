package database

import (
	"context"
	"time"

	"product-chatbot-backend/config"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect establishes the database connection when the catalog is
// backed by MongoDB. For the HTTP catalog source no connection is made.
func Connect(cfg *config.Config) error {
	if cfg.Catalog.Source != "mongodb" {
		return nil
	}
	return ConnectMongoDB(cfg)
}

// Disconnect closes database connection
func Disconnect() error {
	if mongoClient == nil {
		return nil
	}
	return DisconnectMongoDB()
}

// HealthCheck performs a database health check
func HealthCheck() error {
	client := GetMongoClient()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}
