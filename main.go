package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

var (
	Version   = "dev"     // injected at build time
	BuildTime = "unknown" // injected at build time
)

const usage = `civ5client - play-by-email client for Civilization V

Usage:
    civ5client init
    civ5client register <username> <email>
    civ5client new-game <name> <description> <map-size>
    civ5client list
    civ5client info <game-id>
    civ5client join <game-id>
    civ5client list-civs
    civ5client choose-civ <game-id> [<player>] <civilization>
    civ5client change-player-type <game-id> <player> <type>
    civ5client start <game-id>
    civ5client download <game-id>
    civ5client upload <game-id>
    civ5client watch <game-id>
    civ5client parse <file>
    civ5client version

Commands:
    init                Checks configuration and completes it if incomplete.
                        Runs implicitly before every other command.
    register            Requests a new account; the access token arrives by
                        email.
    new-game            Starts a new game with a name, description and map
                        size (duel, tiny, small, standard, large, huge).
    list                Lists the games visible to your account.
    info                Prints detailed information about one game.
    join                Joins a game.
    list-civs           Prints the civilizations a player can pick.
    choose-civ          Picks a civilization, for yourself or (as host) for
                        a numbered player.
    change-player-type  Sets a player slot to human, ai or closed.
    start               Starts a game once everyone has picked.
    download            Downloads the current save into the hotseat save
                        directory, after validating it.
    upload              Validates the local save and uploads it.
    watch               Watches the hotseat directory and uploads the save
                        whenever the game writes it.
    parse               Prints the turn metadata of a local save file.
`

func main() {
	log.SetFlags(log.Ldate | log.Ltime)

	args := os.Args[1:]
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Print(usage)
		return
	}
	verb, rest := args[0], args[1:]

	switch verb {
	case "version":
		fmt.Printf("civ5client %s (built %s)\n", Version, BuildTime)
		return
	case "list-civs":
		exitOn(runListCivs())
		return
	case "parse":
		needArgs(rest, 1)
		exitOn(runParse(rest[0]))
		return
	}

	config, err := loadConfig(configPath())
	exitOn(err)

	ctx := context.Background()

	if verb == "register" {
		needArgs(rest, 2)
		if config.ServerAddress == "" {
			exitOn(promptServerAddress(config))
		}
		api := NewServerAPI(config.ServerAddress, "", config.DeviceID)
		exitOn(api.RegisterAccount(ctx, rest[1], rest[0]))
		fmt.Println("Registered; an email with the access token has been sent")
		return
	}

	// Every command below talks to the server, so the config must be
	// complete first.
	if !config.complete() {
		if verb != "init" {
			fmt.Println("Missing or incomplete config, completing it first")
		}
		exitOn(runInit(ctx, config))
	}

	api := NewServerAPI(config.ServerAddress, config.AccessToken, config.DeviceID)

	if verb == "init" {
		creds, err := api.Credentials(ctx)
		exitOn(err)
		fmt.Printf("Logged in as %s with email %s\n", creds.Username, creds.Email)
		return
	}

	switch verb {
	case "list":
		exitOn(runList(ctx, api))
	case "info":
		needArgs(rest, 1)
		exitOn(runInfo(ctx, api, rest[0]))
	case "join":
		needArgs(rest, 1)
		exitOn(runJoin(ctx, api, rest[0]))
	case "new-game":
		needArgs(rest, 3)
		exitOn(runNewGame(ctx, api, rest[0], rest[1], rest[2]))
	case "choose-civ":
		player, civ := -1, ""
		switch len(rest) {
		case 2:
			civ = rest[1]
		case 3:
			player = parsePlayer(rest[1])
			civ = rest[2]
		default:
			argError("choose-civ <game-id> [<player>] <civilization>")
		}
		exitOn(runChooseCiv(ctx, api, rest[0], player, civ))
	case "change-player-type":
		needArgs(rest, 3)
		exitOn(runChangePlayerType(ctx, api, rest[0], parsePlayer(rest[1]), rest[2]))
	case "start":
		needArgs(rest, 1)
		exitOn(runStart(ctx, api, rest[0]))
	case "download":
		needArgs(rest, 1)
		exitOn(runDownload(ctx, api, config, rest[0]))
	case "upload":
		needArgs(rest, 1)
		exitOn(runUpload(ctx, api, config, rest[0]))
	case "watch":
		needArgs(rest, 1)
		exitOn(runWatch(ctx, api, config, rest[0]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", verb, usage)
		os.Exit(2)
	}
}

func exitOn(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func needArgs(rest []string, n int) {
	if len(rest) != n {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func argError(form string) {
	fmt.Fprintf(os.Stderr, "usage: civ5client %s\n", form)
	os.Exit(2)
}

func parsePlayer(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		exitOn(fmt.Errorf("player must be a non-negative number, got %q", s))
	}
	return n
}

func prompt(label string) string {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptYesNo(question string) bool {
	answer := prompt(question + " [y/n]")
	return strings.HasPrefix(strings.ToLower(answer), "y")
}

func promptServerAddress(config *Config) error {
	for {
		address := parseAddress(prompt("Write the server address"))
		if address != "" {
			config.ServerAddress = address
			return saveConfig(configPath(), config)
		}
		fmt.Println("Not a valid address")
	}
}

// runInit fills in whatever the config is missing: server address, access
// token (registering an account on the way if needed), device id and the
// hotseat save directory.
func runInit(ctx context.Context, config *Config) error {
	if config.ServerAddress == "" {
		if err := promptServerAddress(config); err != nil {
			return err
		}
	}

	if config.AccessToken == "" {
		if !promptYesNo("Do you have an access token (i.e. an account) already?") {
			username := prompt("Please choose your username")
			email := prompt("Please write your email")
			api := NewServerAPI(config.ServerAddress, "", config.DeviceID)
			if err := api.RegisterAccount(ctx, email, username); err != nil {
				return err
			}
			fmt.Println("An email with the access token has been sent")
		}
		config.AccessToken = prompt("Write the access token from the email")
	}

	if config.DeviceID == "" {
		config.DeviceID = newDeviceID()
	}

	if config.SavePath == "" {
		path, err := defaultSavePath()
		if err != nil {
			path = prompt("Unknown operating system. Please write the absolute hotseat save directory path")
		}
		config.SavePath = path
	}

	fmt.Println("Saving configuration to", configPath())
	return saveConfig(configPath(), config)
}
