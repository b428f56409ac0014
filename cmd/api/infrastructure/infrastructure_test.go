package infrastructure

import (
	"context"
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-management-api/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestNewDatabase(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	db, err := NewDatabase(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, db.WithContext(ctx).Exec("CREATE TABLE smoke (id INTEGER)").Error)
	require.NoError(t, db.WithContext(ctx).Exec("INSERT INTO smoke (id) VALUES (1)").Error)

	var count int64
	require.NoError(t, db.WithContext(ctx).Raw("SELECT COUNT(*) FROM smoke").Scan(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.NoError(t, CloseDatabase(db))
	assert.NoError(t, CloseDatabase(nil))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.Redis.Host = host
	cfg.Redis.Port = port

	rdb, err := NewRedisClient(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.NoError(t, rdb.Close())
}
