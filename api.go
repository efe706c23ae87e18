package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ServerAPI wraps the civ5-pbem-server HTTP API. Every operation is a
// single synchronous request; no state is kept across calls beyond the
// credentials needed to make them.
type ServerAPI struct {
	baseURL     string
	accessToken string
	deviceID    string
	client      *http.Client
}

func NewServerAPI(baseURL, accessToken, deviceID string) *ServerAPI {
	return &ServerAPI{
		baseURL:     baseURL,
		accessToken: accessToken,
		deviceID:    deviceID,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RemoteError is a non-success response from the server.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
	return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
}

func (api *ServerAPI) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, api.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if api.accessToken != "" {
		req.Header.Set("Access-Token", api.accessToken)
	}
	if api.deviceID != "" {
		req.Header.Set("X-Device-ID", api.deviceID)
	}
	return req, nil
}

// doJSON sends a request with an optional JSON body and decodes a JSON
// response into out when out is non-nil.
func (api *ServerAPI) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := api.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := api.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	var errResp ErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return &RemoteError{Status: resp.StatusCode, Message: errResp.Error}
	}
	return &RemoteError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(body))}
}

// RegisterAccount requests a new account. The access token arrives by
// email, not in the response.
func (api *ServerAPI) RegisterAccount(ctx context.Context, email, username string) error {
	in := map[string]string{"email": email, "username": username}
	return api.doJSON(ctx, http.MethodPost, "/user-accounts/register", in, nil)
}

// Credentials returns the account the configured access token belongs to.
func (api *ServerAPI) Credentials(ctx context.Context) (*Credentials, error) {
	var out Credentials
	if err := api.doJSON(ctx, http.MethodGet, "/user-accounts/current", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListGames returns the games visible to the account.
func (api *ServerAPI) ListGames(ctx context.Context) ([]GameSummary, error) {
	var out []GameSummary
	if err := api.doJSON(ctx, http.MethodGet, "/games/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GameInfo returns the detailed view of one game.
func (api *ServerAPI) GameInfo(ctx context.Context, gameID string) (*Game, error) {
	var out Game
	if err := api.doJSON(ctx, http.MethodGet, "/games/"+gameID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewGame creates a game and returns its id.
func (api *ServerAPI) NewGame(ctx context.Context, name, description, mapSize string) (string, error) {
	in := map[string]string{
		"gameName":        name,
		"gameDescription": description,
		"mapSize":         mapSize,
	}
	var out newGameResponse
	if err := api.doJSON(ctx, http.MethodPost, "/games/new-game", in, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (api *ServerAPI) JoinGame(ctx context.Context, gameID string) error {
	return api.doJSON(ctx, http.MethodPost, "/games/"+gameID+"/join", nil, nil)
}

// ChooseCivilization picks a civilization. A negative playerNumber means
// the caller's own slot; only the host may pick for others.
func (api *ServerAPI) ChooseCivilization(ctx context.Context, gameID string, playerNumber int, civilization string) error {
	in := map[string]interface{}{
		"civilization": civilization,
	}
	if playerNumber >= 0 {
		in["playerNumber"] = playerNumber
	}
	return api.doJSON(ctx, http.MethodPost, "/games/"+gameID+"/choose-civilization", in, nil)
}

func (api *ServerAPI) ChangePlayerType(ctx context.Context, gameID string, playerNumber int, playerType string) error {
	in := map[string]interface{}{
		"playerNumber": playerNumber,
		"playerType":   playerType,
	}
	return api.doJSON(ctx, http.MethodPost, "/games/"+gameID+"/player-type", in, nil)
}

func (api *ServerAPI) StartGame(ctx context.Context, gameID string) error {
	return api.doJSON(ctx, http.MethodPost, "/games/"+gameID+"/start", nil, nil)
}

// UploadSave transmits a save file as multipart form data. Callers are
// expected to have validated the bytes through the codec first.
func (api *ServerAPI) UploadSave(ctx context.Context, gameID, fileName string, data []byte) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("writing form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing form writer: %w", err)
	}

	req, err := api.newRequest(ctx, http.MethodPost, "/games/"+gameID+"/save", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := api.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return checkResponse(resp)
}

// DownloadSave fetches the current save bytes for a game. The caller must
// validate them before installing into the hotseat directory.
func (api *ServerAPI) DownloadSave(ctx context.Context, gameID string) ([]byte, error) {
	req, err := api.newRequest(ctx, http.MethodGet, "/games/"+gameID+"/save", nil)
	if err != nil {
		return nil, err
	}

	resp, err := api.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("server returned an empty save")
	}
	return data, nil
}
