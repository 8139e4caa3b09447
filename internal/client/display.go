package client

import (
	"fmt"

	"github.com/fatih/color"

	"connect-four-server/internal/domain"
)

// Display renders the board and events to the terminal.
type Display struct {
	redColor    *color.Color
	yellowColor *color.Color
	infoColor   *color.Color
	chatColor   *color.Color
	winColor    *color.Color
	loseColor   *color.Color
	warnColor   *color.Color
}

func NewDisplay() *Display {
	return &Display{
		redColor:    color.New(color.FgRed, color.Bold),
		yellowColor: color.New(color.FgYellow, color.Bold),
		infoColor:   color.New(color.FgCyan),
		chatColor:   color.New(color.FgGreen),
		winColor:    color.New(color.FgGreen, color.Bold),
		loseColor:   color.New(color.FgRed, color.Bold),
		warnColor:   color.New(color.FgYellow),
	}
}

func (d *Display) PrintBanner() {
	d.infoColor.Println(`
╔═══════════════════════════╗
║       CONNECT  FOUR       ║
╚═══════════════════════════╝`)
}

// PrintBoard draws the grid with column numbers underneath.
func (d *Display) PrintBoard(state *domain.BoardSnapshot) {
	fmt.Println()
	for row := 0; row < domain.Rows; row++ {
		fmt.Print(" ")
		for col := 0; col < domain.Columns; col++ {
			fmt.Print("|")
			switch state.Grid[row][col] {
			case domain.Red:
				d.redColor.Print("●")
			case domain.Yellow:
				d.yellowColor.Print("●")
			default:
				fmt.Print(" ")
			}
		}
		fmt.Println("|")
	}
	fmt.Println("  0 1 2 3 4 5 6")
}

// PrintTurn announces whose move it is.
func (d *Display) PrintTurn(state *domain.BoardSnapshot, yourColor string) {
	if state.CurrentTurn.ColorName() == yourColor {
		d.infoColor.Println("Your turn. Type: drop <column>")
	} else {
		d.infoColor.Printf("Waiting for %s to move...\n", d.playerName(state, state.CurrentTurn))
	}
}

func (d *Display) playerName(state *domain.BoardSnapshot, p domain.PlayerID) string {
	if p == domain.Red {
		return state.RedName
	}
	return state.YellowName
}

// PrintResult announces a terminal status from this player's perspective.
func (d *Display) PrintResult(state *domain.BoardSnapshot, yourColor string) {
	switch state.Status {
	case domain.StatusDraw:
		d.warnColor.Println("Game over: draw!")
	case domain.StatusRedWins, domain.StatusYellowWins:
		winner := domain.Red
		if state.Status == domain.StatusYellowWins {
			winner = domain.Yellow
		}
		if winner.ColorName() == yourColor {
			d.winColor.Println("You win!")
		} else {
			d.loseColor.Printf("%s wins.\n", d.playerName(state, winner))
		}
	}
	d.infoColor.Println("Play again? Type: yes / no (or: lobby)")
}

func (d *Display) PrintChat(sender, text string) {
	d.chatColor.Printf("[%s] %s\n", sender, text)
}

func (d *Display) PrintInfo(format string, args ...any) {
	d.infoColor.Printf(format+"\n", args...)
}

func (d *Display) PrintWarn(format string, args ...any) {
	d.warnColor.Printf(format+"\n", args...)
}
