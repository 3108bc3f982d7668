package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/core/v2/info", r.URL.Path)

		w.Header().Set("Content-Type", contentTypeJSON)
		_, err := w.Write([]byte(`{
			"name": "HORNET",
			"version": "2.0.0",
			"status": {"isHealthy": true, "latestMilestone": {"index": 42, "timestamp": 1660000000}},
			"protocol": {"networkName": "testnet", "bech32Hrp": "atoi", "tokenSupply": 2779530283277761, "version": 2}
		}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	api := NewStardustAPI(server.URL)
	info, err := api.Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, "atoi", info.Protocol.Bech32HRP)
	require.EqualValues(t, 2779530283277761, info.Protocol.TokenSupply)
	require.EqualValues(t, 42, info.Status.LatestMilestone.Index)
	require.True(t, info.Status.IsHealthy)
}

func TestErrorMapping(t *testing.T) {
	statusCodes := map[int]error{
		http.StatusBadRequest:          ErrBadRequest,
		http.StatusUnauthorized:        ErrUnauthorized,
		http.StatusNotFound:            ErrNotFound,
		http.StatusInternalServerError: ErrInternalServerError,
		http.StatusNotImplemented:      ErrNotImplemented,
		http.StatusTeapot:              ErrUnknownError,
	}

	for statusCode, expectedErr := range statusCodes {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentTypeJSON)
			w.WriteHeader(statusCode)
			_, writeErr := w.Write([]byte(`{"error": "some failure"}`))
			require.NoError(t, writeErr)
		}))

		api := NewStardustAPI(server.URL)
		_, err := api.Info(context.Background())
		require.Error(t, err)
		require.True(t, errors.Is(err, expectedErr), "status %d should map to %v, got %v", statusCode, expectedErr, err)

		server.Close()
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	api := NewStardustAPI(server.URL)
	_, err := api.Info(ctx)
	require.Error(t, err)
}
