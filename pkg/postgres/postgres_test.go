package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDB_DSN(t *testing.T) {
	cfg := DB{
		Host:     "db",
		Port:     "5432",
		Username: "stats",
		Password: "p@ss",
		NameDB:   "auth",
		SSLMode:  "disable",
	}
	require.Equal(t, "postgres://stats:p%40ss@db:5432/auth?sslmode=disable", cfg.DSN())
}
