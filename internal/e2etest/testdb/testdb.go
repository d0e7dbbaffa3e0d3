package testdb

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"os"

	"github.com/jackc/pgx/v5"
)

// TestDBInstance is a scratch database created through the admin
// connection in TEST_DATABASE_URI. A nil instance means the variable is
// not set and DB-backed tests should skip.
type TestDBInstance struct {
	DSN  string
	base string
	name string
}

func NewTestDBInstance() (*TestDBInstance, error) {
	base := os.Getenv("TEST_DATABASE_URI")
	if base == "" {
		return nil, nil
	}

	name := fmt.Sprintf("shopstack_test_%d", rand.Int63())

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, base)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", name)); err != nil {
		return nil, err
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	u.Path = "/" + name

	return &TestDBInstance{DSN: u.String(), base: base, name: name}, nil
}

func (t *TestDBInstance) Down() {
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, t.base)
	if err != nil {
		return
	}
	defer conn.Close(ctx)

	_, _ = conn.Exec(ctx, fmt.Sprintf("DROP DATABASE %s WITH (FORCE)", t.name))
}
