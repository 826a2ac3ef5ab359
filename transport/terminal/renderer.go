package terminal

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/go2048/game/engine"
	"github.com/wricardo/go2048/game/service"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Board geometry in screen cells
const (
	BoardLeft  = 2
	BoardTop   = 4
	CellWidth  = 7
	CellHeight = 3

	boardWidth  = engine.Size*(CellWidth+1) + 1
	boardHeight = engine.Size*(CellHeight+1) + 1

	statusRow = BoardTop + boardHeight + 1
	promptRow = statusRow + 1

	minWidth  = BoardLeft + boardWidth + 1
	minHeight = promptRow + 1
)

const Title = "2048 GAME"

// View is everything drawn in one frame
type View struct {
	State  *engine.GameState
	Config *service.GameConfig
	Status string
	Prompt string
}

// Renderer draws game frames on a tcell screen
type Renderer struct {
	screen  tcell.Screen
	printer *message.Printer
}

// NewRenderer creates a renderer for an initialised screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen:  screen,
		printer: message.NewPrinter(language.English),
	}
}

// Draw clears the screen and draws v
func (r *Renderer) Draw(v View) {
	r.screen.Clear()
	defer r.screen.Show()

	w, h := r.screen.Size()
	if w < minWidth || h < minHeight {
		r.drawText(0, 0, "Enlarge the terminal to play", tcell.StyleDefault)
		return
	}

	bold := tcell.StyleDefault.Bold(true)
	r.drawText(BoardLeft, 0, Title, bold)

	if v.Config != nil {
		subtitle := v.Config.Name
		if v.Config.Messages.Welcome != "" {
			subtitle += ": " + v.Config.Messages.Welcome
		}
		r.drawText(BoardLeft, 1, subtitle, tcell.StyleDefault.Dim(true))
	}

	if v.State != nil {
		header := r.printer.Sprintf("Score: %d | Steps: %d", v.State.Score, v.State.Steps)
		r.drawText(BoardLeft, 2, header, bold)
		r.drawBoard(v.State.Grid, v.Config)
	}

	r.drawText(BoardLeft, statusRow, v.Status, tcell.StyleDefault)

	prompt := v.Prompt
	if prompt == "" && v.Config != nil {
		prompt = v.Config.Messages.Help
	}
	r.drawText(BoardLeft, promptRow, prompt, tcell.StyleDefault.Dim(v.Prompt == ""))
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func (r *Renderer) drawBoard(grid engine.Grid, config *service.GameConfig) {
	r.drawFrame()
	for row := 0; row < engine.Size; row++ {
		for col := 0; col < engine.Size; col++ {
			value := grid[row][col]
			r.drawCell(row, col, value, tileStyle(config.Colors(value)))
		}
	}
}

// drawFrame draws the grid lines around and between cells
func (r *Renderer) drawFrame() {
	style := tcell.StyleDefault
	right := BoardLeft + boardWidth - 1
	bottom := BoardTop + boardHeight - 1

	for y := BoardTop; y <= bottom; y++ {
		onLine := (y-BoardTop)%(CellHeight+1) == 0
		for x := BoardLeft; x <= right; x++ {
			onCol := (x-BoardLeft)%(CellWidth+1) == 0
			var ch rune
			switch {
			case onLine && onCol:
				ch = junction(x == BoardLeft, x == right, y == BoardTop, y == bottom)
			case onLine:
				ch = tcell.RuneHLine
			case onCol:
				ch = tcell.RuneVLine
			default:
				continue
			}
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func junction(left, right, top, bottom bool) rune {
	switch {
	case top && left:
		return tcell.RuneULCorner
	case top && right:
		return tcell.RuneURCorner
	case bottom && left:
		return tcell.RuneLLCorner
	case bottom && right:
		return tcell.RuneLRCorner
	case top:
		return tcell.RuneTTee
	case bottom:
		return tcell.RuneBTee
	case left:
		return tcell.RuneLTee
	case right:
		return tcell.RuneRTee
	}
	return tcell.RunePlus
}

// CellOrigin returns the top-left screen position inside the frame of a board cell
func CellOrigin(row, col int) (x, y int) {
	return BoardLeft + 1 + col*(CellWidth+1), BoardTop + 1 + row*(CellHeight+1)
}

func (r *Renderer) drawCell(row, col, value int, style tcell.Style) {
	x0, y0 := CellOrigin(row, col)
	for y := y0; y < y0+CellHeight; y++ {
		for x := x0; x < x0+CellWidth; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if value == 0 {
		return
	}

	label := strconv.Itoa(value)
	if len(label) > CellWidth {
		label = label[:CellWidth]
	}
	r.drawText(x0+(CellWidth-len(label))/2, y0+CellHeight/2, label, style.Bold(true))
}

func tileStyle(colors service.TileColors) tcell.Style {
	return tcell.StyleDefault.
		Foreground(colorOf(colors.Foreground)).
		Background(colorOf(colors.Background))
}

// colorOf resolves a palette colour name; unknown names draw in the terminal default
func colorOf(name string) tcell.Color {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(name)
}
