package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInMemoryNonceStorage_RoundTrip(t *testing.T) {
	storage := NewInMemoryNonceStorage()

	require.NoError(t, storage.StoreNonce("session-1", "nonce-1"))

	got, err := storage.RetrieveNonce("session-1")
	require.NoError(t, err)
	require.Equal(t, "nonce-1", got)
}

func TestInMemoryNonceStorage_MissingSession(t *testing.T) {
	storage := NewInMemoryNonceStorage()

	got, err := storage.RetrieveNonce("unknown")
	require.Error(t, err)
	require.Equal(t, "", got)
}

func TestInMemoryNonceStorage_Remove(t *testing.T) {
	storage := NewInMemoryNonceStorage()

	require.NoError(t, storage.StoreNonce("session-1", "nonce-1"))
	require.NoError(t, storage.RemoveNonce("session-1"))

	got, err := storage.RetrieveNonce("session-1")
	require.Error(t, err)
	require.Equal(t, "", got)
}

func TestInMemoryNonceStorage_Overwrite(t *testing.T) {
	storage := NewInMemoryNonceStorage()

	require.NoError(t, storage.StoreNonce("session-1", "first"))
	require.NoError(t, storage.StoreNonce("session-1", "second"))

	got, err := storage.RetrieveNonce("session-1")
	require.NoError(t, err)
	require.Equal(t, "second", got)
}
