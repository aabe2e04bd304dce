// Package mongo provides a MongoDB-backed driven.ReadingStore.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
	"github.com/custodia-labs/lapak/internal/logger"
)

// Ensure ReadingStore implements the interface.
var _ driven.ReadingStore = (*ReadingStore)(nil)

// Default configuration values.
const (
	DefaultDatabase       = domain.DefaultSensorDatabase
	DefaultCollection     = domain.DefaultSensorCollection
	DefaultConnectTimeout = 10 * time.Second
)

// Config holds MongoDB connection settings.
type Config struct {
	// URI is the connection string (required).
	URI string

	// Database is the database name (default: sensordb).
	Database string

	// Collection is the collection name (default: sensor_data).
	Collection string

	// ConnectTimeout bounds server selection (default: 10s).
	ConnectTimeout time.Duration
}

// ReadingStore appends sensor readings to a MongoDB collection.
type ReadingStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewReadingStore connects to MongoDB and pings the primary.
func NewReadingStore(ctx context.Context, cfg Config) (*ReadingStore, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("%w: mongo URI is required", domain.ErrReadingStoreUnavailable)
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", domain.ErrReadingStoreUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping: %w", domain.ErrReadingStoreUnavailable, err)
	}

	logger.Debug("Connected to MongoDB %s.%s", cfg.Database, cfg.Collection)
	return &ReadingStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Insert stores one reading as a document.
func (s *ReadingStore) Insert(ctx context.Context, reading domain.Reading) error {
	if _, err := s.collection.InsertOne(ctx, toDocument(reading)); err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *ReadingStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// toDocument converts a reading into a BSON document. Nested JSON objects
// decode as map[string]any and are converted recursively.
func toDocument(reading domain.Reading) bson.M {
	doc := make(bson.M, len(reading))
	for k, v := range reading {
		doc[k] = toBSONValue(v)
	}
	return doc
}

func toBSONValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return toDocument(val)
	case []any:
		arr := make(bson.A, len(val))
		for i, item := range val {
			arr[i] = toBSONValue(item)
		}
		return arr
	default:
		return val
	}
}
