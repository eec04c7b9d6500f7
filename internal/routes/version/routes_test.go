package version_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestVersionEndpoint(t *testing.T) {
	app := tests.NewApp()

	req, err := http.NewRequest(http.MethodGet, "/version", nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var version models.VersionResponse
	err = json.NewDecoder(resp.Body).Decode(&version)
	require.NoError(t, err)
	require.NotEmpty(t, version.Commit)
}
