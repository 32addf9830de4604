package connect

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/MrSnakeDoc/starfav/internal/logger"
)

// Mongo creates a MongoDB client from a connection string and blocks until
// the primary answers a ping.
func Mongo(ctx context.Context, uri string, retry RetryOptions, log logger.Logger) (*mongo.Client, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid mongo uri: %w", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	// Never log credentials: hosts only.
	addr := fmt.Sprint(cs.Hosts)
	ping := func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }
	if err := WaitReady(ctx, "mongo", addr, ping, retry, log); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
