// Package testutil provides a disposable MongoDB database and fixtures for
// integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
)

const mongoImage = "mongo:7"

var (
	startOnce sync.Once
	sharedURI string
	startErr  error
)

// mongoURI returns MONGO_TEST_URI when set, otherwise starts one mongo
// container shared by every test in the process.
func mongoURI() (string, error) {
	if uri := os.Getenv("MONGO_TEST_URI"); uri != "" {
		return uri, nil
	}

	startOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        mongoImage,
				ExposedPorts: []string{"27017/tcp"},
				WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(90 * time.Second),
			},
			Started: true,
		})
		if err != nil {
			startErr = err
			return
		}

		host, err := container.Host(ctx)
		if err != nil {
			startErr = err
			return
		}
		port, err := container.MappedPort(ctx, "27017/tcp")
		if err != nil {
			startErr = err
			return
		}
		sharedURI = fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	})
	return sharedURI, startErr
}

// SetupTestDB returns a fresh database with every index applied. The
// database is dropped when the test ends. The test is skipped under -short
// or when no MongoDB can be reached.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in short mode")
	}

	uri, err := mongoURI()
	if err != nil {
		t.Skipf("MongoDB unavailable: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		t.Skipf("MongoDB unavailable: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("MongoDB unavailable: %v", err)
	}

	db := client.Database("test_" + uuid.NewString()[:8])
	if err := database.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}
