package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitRedis_InvalidURL(t *testing.T) {
	_, err := InitRedis(context.Background(), "not a url")
	require.Error(t, err)
	require.Contains(t, err.Error(), "error parsing Redis URL")
}

func TestServices_CloseWithoutRedis(t *testing.T) {
	require.NoError(t, (&Services{}).Close())
}
