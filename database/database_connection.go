package database

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var dbClient *mongo.Client

func Connect() *mongo.Client {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	uri := os.Getenv("MONGODB_URI")
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(opts)
	if err != nil {
		panic(err)
	}
	// Send a ping to confirm a successful connection
	if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
		panic(err)
	}
	return client
}

func OpenCollection(collectionName string) *mongo.Collection {
	if dbClient == nil {
		dbClient = Connect()
	}
	databaseName := os.Getenv("DATABASE_NAME")
	collection := dbClient.Database(databaseName).Collection(collectionName)
	return collection
}

// EnsureIndexes creates the unique and lookup indexes the workflows rely
// on. The partial index on applications is the backstop for the
// one-open-application-per-(job, seeker) rule; apply() also checks first
// so the client gets a clean 409 instead of a raw duplicate-key error.
func EnsureIndexes(ctx context.Context) error {
	users := OpenCollection("users")
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "role", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	applications := OpenCollection("applications")
	if _, err := applications.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "jobId", Value: 1}, {Key: "jobSeekerId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": bson.A{"PENDING", "REVIEWED", "ACCEPTED", "REJECTED"}},
			}),
	}); err != nil {
		return fmt.Errorf("applications index: %w", err)
	}

	savedJobs := OpenCollection("saved_jobs")
	if _, err := savedJobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "jobSeekerId", Value: 1}, {Key: "jobId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("saved_jobs index: %w", err)
	}

	jobs := OpenCollection("jobs")
	if _, err := jobs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "isBoosted", Value: -1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "ownerEmployerId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("jobs indexes: %w", err)
	}

	boosts := OpenCollection("boosts")
	if _, err := boosts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "employerId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("boosts indexes: %w", err)
	}

	refresh := OpenCollection("refresh_tokens")
	if _, err := refresh.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tokenHash", Value: 1}},
	}); err != nil {
		return fmt.Errorf("refresh_tokens index: %w", err)
	}

	companies := OpenCollection("companies")
	if _, err := companies.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("companies index: %w", err)
	}

	return nil
}
