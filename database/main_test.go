package database

import (
	"context"
	"log"
	"testing"

	"github.com/siherrmann/retriever/helper"
	loadSql "github.com/siherrmann/retriever/sql"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var dbPort string

func TestMain(m *testing.M) {
	var teardown func(ctx context.Context, opts ...testcontainers.TerminateOption) error
	var err error
	teardown, dbPort, err = helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}

	m.Run()

	if teardown != nil && teardown(context.Background()) != nil {
		log.Fatalf("error tearing down postgres container: %v", err)
	}
}

func initDB(t *testing.T) *helper.Database {
	helper.SetTestDatabaseConfigEnvs(t, dbPort)
	dbConfig, err := helper.NewDatabaseConfiguration()
	require.NoError(t, err, "failed to create database configuration")
	db := helper.NewTestDatabase(dbConfig)

	err = loadSql.Init(db.Instance)
	require.NoError(t, err)

	return db
}

// initHandlers creates fresh contents and chunks handlers with reloaded
// SQL functions. Contents must exist before chunks (foreign key).
func initHandlers(t *testing.T) (*ContentsDBHandler, *ChunksDBHandler) {
	db := initDB(t)

	contents, err := NewContentsDBHandler(db, true)
	require.NoError(t, err)

	chunks, err := NewChunksDBHandler(db, 384, true)
	require.NoError(t, err)

	return contents, chunks
}
