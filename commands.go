package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"civ5client/civ5save"
)

// ErrLocalValidation marks a save file that failed codec validation before
// upload. When it is returned, no request was sent.
var ErrLocalValidation = errors.New("local save validation failed")

// saveFileName is the name the game engine and the client agree on for a
// game's save inside the hotseat directory.
func saveFileName(game *Game) string {
	return game.Name + ".Civ5Save"
}

func runList(ctx context.Context, api *ServerAPI) error {
	games, err := api.ListGames(ctx)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("No games.")
		return nil
	}
	for _, g := range games {
		fmt.Printf("ID: %s\tName: %s\tHost: %s\tState: %s\n", g.ID, g.Name, g.Host, g.GameState)
	}
	return nil
}

func runInfo(ctx context.Context, api *ServerAPI, gameID string) error {
	game, err := api.GameInfo(ctx, gameID)
	if err != nil {
		return err
	}
	fmt.Printf("ID: %s\nName: %s\nHost: %s\nDescription: %s\nMap size: %s\nGame state: %s\nPlayers:\n",
		game.ID, game.Name, game.Host, game.Description, game.MapSize, game.GameState)
	for _, p := range game.Players {
		fmt.Printf("\tID: %s\n\t\tUser: %s\n\t\tNumber: %d\n\t\tCivilization: %s\n\t\tPlayer type: %s\n",
			p.ID, p.HumanUserAccount, p.PlayerNumber, p.Civilization, p.PlayerType)
	}
	fmt.Printf("Number of city states: %d\n", game.NumberOfCityStates)
	return nil
}

func runJoin(ctx context.Context, api *ServerAPI, gameID string) error {
	if err := api.JoinGame(ctx, gameID); err != nil {
		return err
	}
	fmt.Println("Joined game", gameID)
	return nil
}

func runNewGame(ctx context.Context, api *ServerAPI, name, description, mapSize string) error {
	mapSize = strings.ToUpper(mapSize)
	if !isValidMapSize(mapSize) {
		return fmt.Errorf("wrong map size %q, one of: %s", mapSize, strings.Join(mapSizes, ", "))
	}
	id, err := api.NewGame(ctx, name, description, mapSize)
	if err != nil {
		return err
	}
	fmt.Println("Game started successfully with id", id)
	return nil
}

func runListCivs() error {
	for _, civ := range civ5save.KnownCivilizations() {
		fmt.Println(civ)
	}
	return nil
}

func runChooseCiv(ctx context.Context, api *ServerAPI, gameID string, playerNumber int, civ string) error {
	if !civ5save.IsKnownCivilization(civ) {
		return fmt.Errorf("unknown civilization %q, see list-civs", civ)
	}
	if err := api.ChooseCivilization(ctx, gameID, playerNumber, civ); err != nil {
		return err
	}
	fmt.Printf("Player %d now plays %s\n", playerNumber, civ)
	return nil
}

func runChangePlayerType(ctx context.Context, api *ServerAPI, gameID string, playerNumber int, playerType string) error {
	playerType = strings.ToUpper(playerType)
	if !isValidPlayerType(playerType) {
		return fmt.Errorf("wrong player type %q, one of: %s", playerType, strings.Join(playerTypes, ", "))
	}
	if err := api.ChangePlayerType(ctx, gameID, playerNumber, playerType); err != nil {
		return err
	}
	fmt.Printf("Player %d is now %s\n", playerNumber, playerType)
	return nil
}

func runStart(ctx context.Context, api *ServerAPI, gameID string) error {
	if err := api.StartGame(ctx, gameID); err != nil {
		return err
	}
	fmt.Println("Game", gameID, "started")
	return nil
}

// runParse prints the turn metadata of a local save file.
func runParse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading save: %w", err)
	}
	save, err := civ5save.Decode(data)
	if err != nil {
		return err
	}
	sum := save.Summary()
	fmt.Printf("Game version: %s (%s)\nTurn: %d\nActive player: %d\nPasswords set: %d\nDead players: %d\n",
		save.GameVersion(), save.BuildVersion(), sum.Turn, sum.ActivePlayer, sum.PasswordCount, sum.DeadPlayers)
	for i, st := range save.PlayerStatuses() {
		if st == civ5save.StatusMissing {
			continue
		}
		civ, _ := save.Civilization(i)
		fmt.Printf("\tPlayer %d: %s\t%s\n", i, st, civ)
	}
	return nil
}

// uploadSaveFile validates a local save through the codec and transmits
// it. Validation failure means no request is made.
func uploadSaveFile(ctx context.Context, api *ServerAPI, gameID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading save: %w", err)
	}
	save, err := civ5save.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLocalValidation, path, err)
	}

	sum := save.Summary()
	log.Printf("uploading %s (turn %d, active player %d)", filepath.Base(path), sum.Turn, sum.ActivePlayer)
	if err := api.UploadSave(ctx, gameID, filepath.Base(path), data); err != nil {
		return err
	}
	fmt.Println("Save uploaded for game", gameID)
	return nil
}

func runUpload(ctx context.Context, api *ServerAPI, config *Config, gameID string) error {
	game, err := api.GameInfo(ctx, gameID)
	if err != nil {
		return err
	}
	return uploadSaveFile(ctx, api, gameID, filepath.Join(config.SavePath, saveFileName(game)))
}

// runDownload fetches the current save, validates it and installs it into
// the hotseat directory. Unparseable bytes never reach the directory, and
// nothing is replaced while the game is running.
func runDownload(ctx context.Context, api *ServerAPI, config *Config, gameID string) error {
	if gameIsRunning() {
		return errors.New("Civilization V is running, close it before installing a save")
	}

	game, err := api.GameInfo(ctx, gameID)
	if err != nil {
		return err
	}
	data, err := api.DownloadSave(ctx, gameID)
	if err != nil {
		return err
	}
	save, err := civ5save.Decode(data)
	if err != nil {
		return fmt.Errorf("refusing to install unparseable save: %w", err)
	}

	if err := os.MkdirAll(config.SavePath, 0755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	target := filepath.Join(config.SavePath, saveFileName(game))
	if err := writeFileAtomic(target, data); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}

	sum := save.Summary()
	fmt.Printf("Downloaded %s (turn %d, active player %d)\n", filepath.Base(target), sum.Turn, sum.ActivePlayer)
	return nil
}

// writeFileAtomic writes via a temp file and rename, so a failed write
// never clobbers an existing valid save with a partial one.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".civ5client-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func gameIsRunning() bool {
	for _, name := range civ5ProcessNames {
		if isProcessRunning(name) {
			return true
		}
	}
	return false
}
