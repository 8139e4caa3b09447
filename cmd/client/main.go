package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"connect-four-server/internal/client"
	"connect-four-server/internal/domain"
	"connect-four-server/internal/service/bot"
)

func main() {
	serverURL := flag.String("server", "ws://localhost:8080/ws", "server websocket URL")
	name := flag.String("name", "", "username (prompted if empty)")
	solo := flag.String("solo", "", "play offline against the bot: easy, medium or hard")
	flag.Parse()

	display := client.NewDisplay()
	display.PrintBanner()

	stdin := bufio.NewScanner(os.Stdin)

	if *solo != "" {
		runSolo(display, stdin, bot.Difficulty(*solo))
		return
	}

	runOnline(display, stdin, *serverURL, *name)
}

func prompt(stdin *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !stdin.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(stdin.Text())
}

func runOnline(display *client.Display, stdin *bufio.Scanner, serverURL, name string) {
	c, err := client.Dial(serverURL)
	if err != nil {
		log.Fatalf("Connection failed: %v", err)
	}
	defer c.Close()

	// Login loop: a rejected username keeps the connection open for retry.
	for {
		if name == "" {
			name = prompt(stdin, "Username: ")
		}
		if err := c.Login(name); err != nil {
			log.Fatalf("Send failed: %v", err)
		}

		msg, ok := <-c.Events
		if !ok {
			log.Fatal("Server closed the connection")
		}
		if msg.Type == domain.MsgLoginResponse && msg.Success {
			display.PrintInfo("Logged in as %s. Waiting for an opponent...", name)
			break
		}
		display.PrintWarn("Login failed: %s", msg.Error)
		name = ""
	}

	// Stdin runs in its own goroutine so the event loop never blocks on
	// the keyboard.
	commands := make(chan client.Command)
	go func() {
		defer close(commands)
		for stdin.Scan() {
			cmd, err := client.ParseCommand(stdin.Text())
			if err != nil {
				display.PrintWarn("%v", err)
				continue
			}
			commands <- cmd
		}
	}()

	yourColor := ""

	for {
		select {
		case msg, ok := <-c.Events:
			if !ok {
				display.PrintWarn("Disconnected from server.")
				return
			}
			switch msg.Type {
			case domain.MsgGameStart:
				yourColor = msg.YourColor
				display.PrintInfo("Match started against %s. You play %s.", msg.Opponent, msg.YourColor)
				display.PrintBoard(msg.State)
				display.PrintTurn(msg.State, yourColor)
			case domain.MsgGameState:
				display.PrintBoard(msg.State)
				if msg.State.Status.Terminal() {
					display.PrintResult(msg.State, yourColor)
				} else {
					display.PrintTurn(msg.State, yourColor)
				}
			case domain.MsgChat:
				display.PrintChat(msg.Sender, msg.Text)
			case domain.MsgPlayAgainResponse:
				switch {
				case msg.BothAccepted:
					display.PrintInfo("Rematch on!")
				case msg.OpponentDisconnected:
					display.PrintWarn("Opponent disconnected. Type yes to find a new match.")
				default:
					display.PrintWarn("Opponent declined the rematch. Type yes to find a new match.")
				}
			case domain.MsgDisconnect:
				display.PrintWarn("%s", msg.Reason)
			case domain.MsgError:
				display.PrintWarn("Server error: %s", msg.Message)
			}

		case cmd, ok := <-commands:
			if !ok {
				c.Disconnect("client exited")
				return
			}
			var err error
			switch cmd.Kind {
			case client.CmdDrop:
				err = c.Move(cmd.Column)
			case client.CmdChat:
				err = c.Chat(cmd.Text)
			case client.CmdYes:
				err = c.PlayAgain(true)
			case client.CmdNo:
				err = c.PlayAgain(false)
			case client.CmdLobby:
				err = c.ReturnToLobby()
			case client.CmdCancel:
				err = c.CancelMatchmaking()
			case client.CmdQuit:
				c.Disconnect("goodbye")
				return
			}
			if err != nil {
				display.PrintWarn("Disconnected: %v", err)
				return
			}
		}
	}
}

// runSolo plays a local game against the bot; the bot is just a function
// from a board position to a column, no server involved.
func runSolo(display *client.Display, stdin *bufio.Scanner, difficulty bot.Difficulty) {
	switch difficulty {
	case bot.Easy, bot.Medium, bot.Hard:
	default:
		log.Fatalf("Unknown difficulty %q: want easy, medium or hard", difficulty)
	}

	name := prompt(stdin, "Username: ")
	game := domain.NewGame(name, "Bot")
	display.PrintInfo("You play red against the %s bot.", difficulty)
	display.PrintBoard(game.Snapshot())

	for !game.IsFinished() {
		if game.CurrentTurn == domain.Red {
			line := prompt(stdin, "drop> ")
			cmd, err := client.ParseCommand("drop " + line)
			if err != nil {
				display.PrintWarn("%v", err)
				continue
			}
			if _, err := game.MakeMove(cmd.Column); err != nil {
				display.PrintWarn("%v", err)
				continue
			}
		} else {
			column := bot.ChooseColumn(game.Grid, domain.Yellow, difficulty)
			if column < 0 {
				break
			}
			game.MakeMove(column)
			display.PrintInfo("Bot drops in column %d.", column)
		}
		display.PrintBoard(game.Snapshot())
	}

	snapshot := game.Snapshot()
	switch snapshot.Status {
	case domain.StatusRedWins:
		display.PrintInfo("You win!")
	case domain.StatusYellowWins:
		display.PrintWarn("The bot wins.")
	case domain.StatusDraw:
		display.PrintWarn("Draw.")
	}
}
