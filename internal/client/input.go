package client

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind is what the user asked for at the prompt.
type CommandKind int

const (
	CmdDrop CommandKind = iota
	CmdChat
	CmdYes
	CmdNo
	CmdLobby
	CmdCancel
	CmdQuit
)

type Command struct {
	Kind   CommandKind
	Column int
	Text   string
}

// ParseCommand turns a line of user input into a command.
//
//	drop 3     drop a disk in column 3
//	say hello  send a chat message
//	yes / no   rematch vote
//	lobby      leave the match, back to matchmaking
//	cancel     leave the matchmaking queue
//	quit       disconnect and exit
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	switch strings.ToLower(fields[0]) {
	case "drop", "d":
		if len(fields) < 2 {
			return Command{}, fmt.Errorf("usage: drop <column>")
		}
		column, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, fmt.Errorf("column must be a number 0-6")
		}
		return Command{Kind: CmdDrop, Column: column}, nil
	case "say", "s":
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		if text == "" {
			return Command{}, fmt.Errorf("usage: say <message>")
		}
		return Command{Kind: CmdChat, Text: text}, nil
	case "yes", "y":
		return Command{Kind: CmdYes}, nil
	case "no", "n":
		return Command{Kind: CmdNo}, nil
	case "lobby":
		return Command{Kind: CmdLobby}, nil
	case "cancel":
		return Command{Kind: CmdCancel}, nil
	case "quit", "exit", "q":
		return Command{Kind: CmdQuit}, nil
	}

	return Command{}, fmt.Errorf("unknown command: %s", fields[0])
}
