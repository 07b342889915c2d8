//go:build integration

package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/marcelsud/hookbin/hook/mongo"
	"github.com/stretchr/testify/require"
	testcontainersmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
)

/* Test Helpers for MongoDB Integration Tests
 * Following the pattern from: https://eltonminetto.dev/post/2024-02-15-using-test-helpers/
 */

// MongoContainer holds the MongoDB testcontainer and connection details
type MongoContainer struct {
	Container *testcontainersmongodb.MongoDBContainer
	URI       string
}

// SetupMongoContainer creates and starts a MongoDB testcontainer
func SetupMongoContainer(t *testing.T, ctx context.Context) (*MongoContainer, func()) {
	t.Helper()

	container, err := testcontainersmongodb.Run(ctx, "mongo:7")
	require.NoError(t, err, "failed to start MongoDB container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "failed to get MongoDB connection string")

	mc := &MongoContainer{
		Container: container,
		URI:       uri,
	}

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate MongoDB container: %v", err)
		}
	}

	return mc, cleanup
}

// CreateTestRepository creates an initialized repository in a database of its own
func CreateTestRepository(t *testing.T, uri string, opts ...mongo.Option) *mongo.Repository {
	t.Helper()

	opts = append([]mongo.Option{mongo.WithDatabase(fmt.Sprintf("hookbin_test_%d", time.Now().UnixNano()))}, opts...)
	repo, err := mongo.NewRepository(uri, opts...)
	require.NoError(t, err, "failed to create MongoDB repository")
	require.NoError(t, repo.Init(context.Background()), "failed to initialize MongoDB repository")

	return repo
}
