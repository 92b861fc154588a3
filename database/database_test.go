package database

import (
	"testing"

	"genset/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	d, err := Dialector(config.DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", DBName: "genset", Charset: "utf8mb4"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(config.DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", DBName: "genset"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector(config.DatabaseConfig{Driver: "sqlite", Path: "genset.db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	// sqlite 必须配置路径
	_, err = Dialector(config.DatabaseConfig{Driver: "sqlite"})
	assert.Error(t, err)

	_, err = Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported")
}
