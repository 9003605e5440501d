package db

import (
	"context"
	"fmt"

	"streamcal/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the MongoDB client and database connection. Mongo is the
// scrape archive: every run upserts its releases so old months stay
// queryable after the JSON artifact moves on.
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	collection  *mongo.Collection
}

// NewClient creates a new database client
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Client{}
	}

	database := mongoClient.Database(databaseName)
	collection := database.Collection(collectionName)

	return &Client{
		mongoClient: mongoClient,
		database:    database,
		collection:  collection,
	}
}

// Connect establishes connection to MongoDB
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// SaveRelease upserts one release, keyed by (title, date, kind). Re-running a
// month refreshes platform, synopsis and enrichment in place.
func (c *Client) SaveRelease(ctx context.Context, release *domain.Release) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	filter := bson.M{
		"title": release.Title,
		"date":  release.Date,
		"kind":  release.Kind,
	}
	update := bson.M{"$set": release}
	opts := options.Update().SetUpsert(true)

	_, err := c.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// SaveReleases upserts a batch of releases, stopping on the first error.
func (c *Client) SaveReleases(ctx context.Context, releases []domain.Release) error {
	for i := range releases {
		if err := c.SaveRelease(ctx, &releases[i]); err != nil {
			return fmt.Errorf("failed to save release %q: %w", releases[i].Title, err)
		}
	}
	return nil
}

// AllReleases fetches every stored release, used by replication.
func (c *Client) AllReleases(ctx context.Context) ([]domain.Release, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	cursor, err := c.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query releases: %w", err)
	}
	defer cursor.Close(ctx)

	var releases []domain.Release
	for cursor.Next(ctx) {
		var r domain.Release
		if err := cursor.Decode(&r); err != nil {
			continue // Skip invalid documents
		}
		releases = append(releases, r)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return releases, nil
}
