package store

import (
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestFindError(t *testing.T) {
	if err := findError(nil, "find user"); err != nil {
		t.Fatalf("nil error became %v", err)
	}
	if err := findError(mongo.ErrNoDocuments, "find user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	cause := errors.New("server selection timeout")
	err := findError(cause, `find user "a@x.com"`)
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("driver failure reported as not found")
	}
	if !strings.HasPrefix(err.Error(), `find user "a@x.com": `) {
		t.Fatalf("missing operation name: %q", err.Error())
	}
}
