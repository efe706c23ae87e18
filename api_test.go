package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/", r.URL.Path)
		assert.Equal(t, "token-123", r.Header.Get("Access-Token"))
		assert.Equal(t, "device-1", r.Header.Get("X-Device-ID"))
		json.NewEncoder(w).Encode([]GameSummary{
			{ID: "g1", Name: "First", Host: "alice", GameState: "WAITING_FOR_PLAYERS"},
		})
	}))
	defer srv.Close()

	api := NewServerAPI(srv.URL, "token-123", "device-1")
	games, err := api.ListGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "First", games[0].Name)
}

func TestGameInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/g1", r.URL.Path)
		json.NewEncoder(w).Encode(Game{
			ID:      "g1",
			Name:    "First",
			MapSize: "DUEL",
			Players: []Player{{PlayerNumber: 0, Civilization: "CIVILIZATION_ROME", PlayerType: "HUMAN"}},
		})
	}))
	defer srv.Close()

	api := NewServerAPI(srv.URL, "t", "")
	game, err := api.GameInfo(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "DUEL", game.MapSize)
	require.Len(t, game.Players, 1)
	assert.Equal(t, "CIVILIZATION_ROME", game.Players[0].Civilization)
}

func TestNewGamePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/games/new-game", r.URL.Path)
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "My Game", in["gameName"])
		assert.Equal(t, "STANDARD", in["mapSize"])
		json.NewEncoder(w).Encode(newGameResponse{ID: "g9"})
	}))
	defer srv.Close()

	api := NewServerAPI(srv.URL, "t", "")
	id, err := api.NewGame(context.Background(), "My Game", "desc", "STANDARD")
	require.NoError(t, err)
	assert.Equal(t, "g9", id)
}

func TestRemoteErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "game is full"})
	}))
	defer srv.Close()

	api := NewServerAPI(srv.URL, "t", "")
	err := api.JoinGame(context.Background(), "g1")
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusConflict, re.Status)
	assert.Equal(t, "game is full", re.Message)
}

func TestRemoteErrorPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	api := NewServerAPI(srv.URL, "t", "")
	_, err := api.GameInfo(context.Background(), "nope")
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusNotFound, re.Status)
	assert.Equal(t, "not found", re.Message)
}

func TestUploadSaveMultipart(t *testing.T) {
	var gotName string
	var gotSize int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/g1/save", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotName = header.Filename
		gotSize = int(header.Size)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	api := NewServerAPI(srv.URL, "t", "")
	err := api.UploadSave(context.Background(), "g1", "First.Civ5Save", []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, "First.Civ5Save", gotName)
	assert.Equal(t, len("payload"), gotSize)
}

func TestDownloadSave(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/g1/save", r.URL.Path)
		w.Write([]byte{0x01, 0x02, 0x03})
	}))
	defer srv.Close()

	api := NewServerAPI(srv.URL, "t", "")
	data, err := api.DownloadSave(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, data)
}

func TestDownloadSaveEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	api := NewServerAPI(srv.URL, "t", "")
	_, err := api.DownloadSave(context.Background(), "g1")
	require.Error(t, err)
}
