package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)

	applied, err := migrateSQL(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, applied, "schema already applied in TestMain")

	version, err := SchemaVersion(ctx, stdlib.RegisterConnConfig(pool.Config().ConnConfig))
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
