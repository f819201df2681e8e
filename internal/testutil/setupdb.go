// internal/testutil/setupdb.go

// Package testutil provides the shared test harness: per-test MongoDB
// databases, fixtures for domain documents, and HTTP request helpers.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/huddleup/huddle/internal/app/system/indexes"
	"github.com/huddleup/huddle/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var dbCounter atomic.Int64

// testMongoURI returns the MongoDB URI used for tests. Override with
// HUDDLE_TEST_MONGO_URI to point at a non-local instance.
func testMongoURI() string {
	if uri := os.Getenv("HUDDLE_TEST_MONGO_URI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

// TestContext returns a context with the standard test deadline.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeouts.Long())
}

// SetupTestDB connects to the test MongoDB instance and returns a fresh,
// uniquely named database with the production index set (single-vote on).
// The test is skipped when no MongoDB is reachable. The database is
// dropped and the client disconnected when the test finishes.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	return SetupTestDBWithIndexes(t, indexes.Options{SingleVote: true})
}

// SetupTestDBWithIndexes is SetupTestDB with control over the index set,
// for tests that exercise the legacy multi-vote behavior.
func SetupTestDBWithIndexes(t *testing.T, opts indexes.Options) *mongo.Database {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Ping())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(testMongoURI()))
	if err != nil {
		t.Skipf("mongodb not available: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongodb not available: %v", err)
	}

	name := fmt.Sprintf("huddle_test_%d_%d", time.Now().UnixNano(), dbCounter.Add(1))
	db := client.Database(name)

	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), timeouts.Medium())
		defer cancel()
		_ = db.Drop(cleanupCtx)
		_ = client.Disconnect(cleanupCtx)
	})

	idxCtx, cancelIdx := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancelIdx()
	if err := indexes.EnsureAll(idxCtx, db, opts); err != nil {
		t.Fatalf("failed to ensure test indexes: %v", err)
	}

	return db
}
