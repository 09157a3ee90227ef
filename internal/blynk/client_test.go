package blynk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blynk_bridge/internal/blynk"
	"blynk_bridge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "secret-token", r.URL.Query().Get("token"))
		switch r.URL.Query().Get("pin") {
		case "V1":
			_, _ = w.Write([]byte(`["1"]`))
		case "V2":
			_, _ = w.Write([]byte(`342`))
		default:
			http.Error(w, `{"error":{"message":"Invalid pin"}}`, http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := blynk.NewClient(server.URL+"/", "secret-token")

	r, err := client.Get(context.Background(), "V1")
	require.NoError(t, err)
	assert.Equal(t, models.ReadingSequence, r.Kind)
	assert.Equal(t, 1, r.Int())

	r, err = client.Get(context.Background(), "V2")
	require.NoError(t, err)
	assert.Equal(t, models.ReadingScalar, r.Kind)
	assert.Equal(t, 342, r.Int())

	r, err = client.Get(context.Background(), "V9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, blynk.ErrStatus))
	assert.Equal(t, models.ReadingAbsent, r.Kind)
}

func TestClient_Update(t *testing.T) {
	var gotPin, gotValue string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/update", r.URL.Path)
		gotPin = r.URL.Query().Get("pin")
		gotValue = r.URL.Query().Get("value")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := blynk.NewClient(server.URL, "tok")
	require.NoError(t, client.Update(context.Background(), "V0", 1))
	assert.Equal(t, "V0", gotPin)
	assert.Equal(t, "1", gotValue)
}

func TestClient_Update_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	err := blynk.NewClient(server.URL, "tok").Update(context.Background(), "V0", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, blynk.ErrStatus)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_Get_TimeoutAndTokenScrubbed(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := blynk.NewClient(server.URL, "very-secret-token")
	ctx, cancel := blynk.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Get(ctx, "V1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.NotContains(t, err.Error(), "very-secret-token")
}

func TestClient_ReadURL_RedactsToken(t *testing.T) {
	client := blynk.NewClient("https://blynk.cloud/external/api", "rdimvmv9nfeHq6wt")
	u := client.ReadURL("V1")
	assert.Equal(t, "https://blynk.cloud/external/api/get?token=rdim***&pin=V1", u)
	assert.False(t, strings.Contains(u, "nfeHq6wt"))
}

func TestRedactToken(t *testing.T) {
	assert.Equal(t, "***", blynk.RedactToken(""))
	assert.Equal(t, "***", blynk.RedactToken("abcd"))
	assert.Equal(t, "abcd***", blynk.RedactToken("abcdef"))
}
