package migrate

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OrdersAndChecksums(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0002_profile.sql":  {Data: []byte("ALTER TABLE accounts ADD COLUMN bio TEXT;")},
		"migrations/0001_accounts.sql": {Data: []byte("CREATE TABLE accounts (id TEXT);")},
		"migrations/README.md":         {Data: []byte("not a migration")},
	}

	got, err := load(fsys)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0001_accounts", got[0].Version)
	assert.Equal(t, "0002_profile", got[1].Version)
	assert.Len(t, got[0].Checksum, 64)
	assert.NotEqual(t, got[0].Checksum, got[1].Checksum)

	again, err := load(fsys)
	require.NoError(t, err)
	assert.Equal(t, got[0].Checksum, again[0].Checksum, "checksum is stable")
}

func TestLoad_Embedded(t *testing.T) {
	got, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "0001_accounts", got[0].Version)
	assert.Contains(t, got[0].SQL, "CREATE TABLE IF NOT EXISTS accounts")
}
