package client

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marjorv/lanrelay/internal/protocol"
)

const connectTimeout = 5 * time.Second

type connectResultMsg struct {
	session *Session
	address string
	err     error
}

type frameMsg struct {
	session *Session
	data    []byte
}

type sessionClosedMsg struct {
	session *Session
}

func (a *App) handleSubmit(value string) tea.Cmd {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if strings.HasPrefix(value, string(a.cfg.CommandPrefix)) {
		return a.executeCommand(value)
	}
	return a.sendSay(value)
}

func (a *App) executeCommand(raw string) tea.Cmd {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}

	trigger := strings.ToLower(fields[0])
	var cmds []tea.Cmd

	switch trigger {
	case "/chat":
		a.view = viewChat
		a.logf("Switched to CHAT view")
	case "/help":
		a.view = viewHelp
		a.logf("Switched to HELP view")
	case "/connect":
		target := a.serverAddr
		if len(fields) > 1 {
			target = fields[1]
		}
		if target == "" {
			a.logErrorf("Provide a server address to connect")
			break
		}
		if connectCmd := a.connectToServer(target); connectCmd != nil {
			cmds = append(cmds, connectCmd)
		}
	case "/join":
		if len(fields) < 2 {
			a.logErrorf("Usage: /join <room>")
			break
		}
		if !a.isConnected() {
			a.logErrorf("Not connected. Use /connect first.")
			break
		}
		room := fields[1]
		a.logf("Joining room %s ...", room)
		if joinCmd := a.sendJoin(room); joinCmd != nil {
			cmds = append(cmds, joinCmd)
		}
	case "/move":
		if len(fields) < 2 {
			a.logErrorf("Usage: /move <1-9>")
			break
		}
		if moveCmd := a.sendMove(fields[1]); moveCmd != nil {
			cmds = append(cmds, moveCmd)
		}
	case "/restart":
		if !a.hasActiveRoom() {
			a.logErrorf("Join a room before restarting a game")
			break
		}
		if restartCmd := a.sendGame(map[string]any{
			"t":      protocol.KindGame,
			"action": gameActionRestart,
		}); restartCmd != nil {
			cmds = append(cmds, restartCmd)
		}
	case "/board":
		if !a.hasActiveRoom() {
			a.logErrorf("Join a room to see a board")
			break
		}
		for _, line := range strings.Split(a.board.render(), "\n") {
			a.appendChat(line)
		}
		a.view = viewChat
	case "/quit":
		a.logf("Exiting client")
		cmds = append(cmds, a.quit())
	default:
		a.logErrorf("Command %s not implemented", trigger)
	}

	a.updateViewportContent()

	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (a *App) connectToServer(target string) tea.Cmd {
	if a.session != nil {
		_ = a.session.Close()
		a.session = nil
	}

	a.serverAddr = target
	a.statusOnline = false
	a.connID = ""
	a.room = "-"
	a.role = "-"
	a.rosterLine = "-"
	a.board.reset()
	a.logf("Connecting to %s ...", target)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		session, err := Dial(ctx, target)
		return connectResultMsg{session: session, address: target, err: err}
	}
}

func (a *App) listenForSession() tea.Cmd {
	session := a.session
	if session == nil {
		return nil
	}
	return func() tea.Msg {
		data, ok := <-session.Frames()
		if !ok {
			return sessionClosedMsg{session: session}
		}
		return frameMsg{session: session, data: data}
	}
}

func (a *App) sendSay(text string) tea.Cmd {
	if !a.isConnected() {
		a.logErrorf("Not connected. Use /connect first.")
		return nil
	}
	if !a.hasActiveRoom() {
		a.logErrorf("Join a room before chatting")
		return nil
	}
	session := a.session
	packet := protocol.Say{T: protocol.KindSay, Text: text}
	return func() tea.Msg {
		if err := session.Send(packet); err != nil {
			return sessionClosedMsg{session: session}
		}
		return nil
	}
}

func (a *App) sendJoin(room string) tea.Cmd {
	session := a.session
	if session == nil {
		return nil
	}
	packet := protocol.Join{T: protocol.KindJoin, Room: room}
	return func() tea.Msg {
		if err := session.Send(packet); err != nil {
			return sessionClosedMsg{session: session}
		}
		return nil
	}
}

// sendMove validates the player's own input locally before relaying it. The
// relay would forward anything; this just keeps honest clients honest.
func (a *App) sendMove(arg string) tea.Cmd {
	if !a.isConnected() {
		a.logErrorf("Not connected. Use /connect first.")
		return nil
	}
	if !a.hasActiveRoom() {
		a.logErrorf("Join a room before playing")
		return nil
	}
	if a.role != "X" && a.role != "O" {
		a.logErrorf("Spectators cannot move")
		return nil
	}

	cell, err := strconv.Atoi(arg)
	if err != nil || cell < 1 || cell > boardCells {
		a.logErrorf("Cells are numbered 1-9")
		return nil
	}
	if winner := a.board.winner(); winner != "" {
		a.logErrorf("Game over (%s won). Use /restart to play again.", winner)
		return nil
	}
	if a.board.next != a.role {
		a.logErrorf("Not your turn (%s to move)", a.board.next)
		return nil
	}
	if a.board.cells[cell-1] != "" {
		a.logErrorf("Cell %d is taken", cell)
		return nil
	}

	return a.sendGame(map[string]any{
		"t":      protocol.KindGame,
		"action": gameActionMove,
		"cell":   cell - 1,
		"mark":   a.role,
	})
}

func (a *App) sendGame(packet map[string]any) tea.Cmd {
	session := a.session
	if session == nil {
		return nil
	}
	return func() tea.Msg {
		if err := session.Send(packet); err != nil {
			return sessionClosedMsg{session: session}
		}
		return nil
	}
}
