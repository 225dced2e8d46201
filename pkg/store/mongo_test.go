package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/latticekit/pkg/errors"
)

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("LATTICEKIT_MONGO_URI")
	if uri == "" {
		t.Skip("LATTICEKIT_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "latticekit_test_" + uuid.NewString()[:8]
	s, err := NewMongoStore(ctx, uri, db)
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer func() {
		_ = s.client.Database(db).Drop(ctx)
		_ = s.Close(ctx)
	}()

	exerciseStore(t, s)
}

func TestNewMongoStore_BadURL(t *testing.T) {
	_, err := NewMongoStore(context.Background(), "http://localhost:27017", "x")
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("code = %q, want %q", errs.GetCode(err), errs.ErrCodeInvalidInput)
	}
}
