package client

import (
	"strings"
	"testing"
)

func TestBoardAlternatesTurns(t *testing.T) {
	b := newBoard()
	if b.next != "X" {
		t.Fatalf("fresh board next = %q, want X", b.next)
	}
	b.applyMove(0, "X")
	if b.next != "O" {
		t.Errorf("next after X = %q, want O", b.next)
	}
	b.applyMove(4, "O")
	if b.next != "X" {
		t.Errorf("next after O = %q, want X", b.next)
	}
}

func TestBoardIgnoresBadMoves(t *testing.T) {
	b := newBoard()
	b.applyMove(0, "X")

	b.applyMove(0, "O") // occupied
	if b.cells[0] != "X" {
		t.Errorf("occupied cell overwritten: %q", b.cells[0])
	}
	b.applyMove(-1, "O")
	b.applyMove(9, "O")
	b.applyMove(1, "Z") // not a mark
	if b.cells[1] != "" {
		t.Errorf("invalid mark landed: %q", b.cells[1])
	}
	if b.next != "O" {
		t.Errorf("bad moves advanced the turn to %q", b.next)
	}
}

func TestBoardWinnerDetection(t *testing.T) {
	cases := []struct {
		name  string
		cells [3]int
	}{
		{"row", [3]int{0, 1, 2}},
		{"column", [3]int{0, 3, 6}},
		{"diagonal", [3]int{0, 4, 8}},
		{"antidiagonal", [3]int{2, 4, 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBoard()
			for _, cell := range tc.cells {
				b.cells[cell] = "X"
			}
			if got := b.winner(); got != "X" {
				t.Errorf("winner = %q, want X", got)
			}
		})
	}

	b := newBoard()
	if b.winner() != "" {
		t.Error("empty board reported a winner")
	}
}

func TestBoardRenderShowsMarksAndNumbers(t *testing.T) {
	b := newBoard()
	b.applyMove(4, "X")
	out := b.render()
	if !strings.Contains(out, " X ") {
		t.Errorf("render missing placed mark:\n%s", out)
	}
	if !strings.Contains(out, " 1 ") || !strings.Contains(out, " 9 ") {
		t.Errorf("render missing cell numbers:\n%s", out)
	}
}

func TestBoardReset(t *testing.T) {
	b := newBoard()
	b.applyMove(0, "X")
	b.reset()
	if b.cells[0] != "" || b.next != "X" {
		t.Errorf("reset left state: cells[0]=%q next=%q", b.cells[0], b.next)
	}
}

func TestLongestCommonPrefix(t *testing.T) {
	if got := longestCommonPrefix([]string{"/connect", "/chat"}); got != "/c" {
		t.Errorf("longestCommonPrefix = %q, want /c", got)
	}
	if got := longestCommonPrefix([]string{"/join"}); got != "/join" {
		t.Errorf("longestCommonPrefix = %q, want /join", got)
	}
	if got := longestCommonPrefix(nil); got != "" {
		t.Errorf("longestCommonPrefix(nil) = %q", got)
	}
}
