package client

import "strings"

// Game frame actions exchanged between clients. The relay never looks at
// these; they are a convention between lanrelay clients.
const (
	gameActionMove    = "move"
	gameActionRestart = "restart"
)

const boardCells = 9

// board is the client's local view of the tic-tac-toe grid, reconstructed
// from relayed game frames.
type board struct {
	cells [boardCells]string
	next  string
}

func newBoard() board {
	return board{next: "X"}
}

// applyMove records a relayed move. Out-of-range or occupied cells are
// ignored; the relay forwards whatever the peer sent.
func (b *board) applyMove(cell int, mark string) {
	if cell < 0 || cell >= boardCells {
		return
	}
	if b.cells[cell] != "" {
		return
	}
	if mark != "X" && mark != "O" {
		return
	}
	b.cells[cell] = mark
	if mark == "X" {
		b.next = "O"
	} else {
		b.next = "X"
	}
}

func (b *board) reset() {
	*b = newBoard()
}

// cellAt shows the mark in a cell, or its 1-based number when empty.
func (b *board) cellAt(i int) string {
	if b.cells[i] != "" {
		return b.cells[i]
	}
	return string(rune('1' + i))
}

// winner scans rows, columns, and diagonals for three in a row.
func (b *board) winner() string {
	lines := [][3]int{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
		{0, 4, 8}, {2, 4, 6},
	}
	for _, line := range lines {
		mark := b.cells[line[0]]
		if mark != "" && mark == b.cells[line[1]] && mark == b.cells[line[2]] {
			return mark
		}
	}
	return ""
}

func (b *board) full() bool {
	for _, c := range b.cells {
		if c == "" {
			return false
		}
	}
	return true
}

// render draws the grid as three rows with separators.
func (b *board) render() string {
	var rows []string
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			cells[col] = " " + b.cellAt(row*3+col) + " "
		}
		rows = append(rows, strings.Join(cells, "|"))
	}
	return strings.Join(rows, "\n---+---+---\n")
}
