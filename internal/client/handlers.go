package client

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marjorv/lanrelay/internal/protocol"
)

func (a *App) handleConnectResult(msg connectResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logErrorf("Connection failed: %v", msg.err)
		return a, nil
	}

	a.session = msg.session
	a.statusOnline = true
	a.logf("Connected to %s", msg.address)
	return a, a.listenForSession()
}

func (a *App) handleSessionClosed(msg sessionClosedMsg) (tea.Model, tea.Cmd) {
	if msg.session != a.session || a.session == nil {
		return a, nil
	}
	a.session = nil
	a.statusOnline = false
	a.connID = ""
	a.room = "-"
	a.role = "-"
	a.rosterLine = "-"
	a.logErrorf("Connection closed")
	return a, nil
}

func (a *App) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if msg.session != a.session || a.session == nil {
		return a, nil
	}

	frame, err := decodeServerFrame(msg.data)
	if err != nil {
		a.logErrorf("Bad frame from server: %v", err)
		return a, a.listenForSession()
	}

	switch frame.Kind {
	case protocol.KindHello:
		a.handleHello(frame.Hello)
	case protocol.KindRole:
		a.handleRole(frame.Role)
	case protocol.KindRoster:
		a.handleRoster(frame.Roster)
	case protocol.KindMsg:
		a.handleMsg(frame.Msg)
	case protocol.KindGame:
		a.handleGame(frame.Game)
	}
	return a, a.listenForSession()
}

func (a *App) handleHello(hello protocol.Hello) {
	a.connID = hello.ID
	if len(hello.IPs) > 0 {
		a.logf("Connected as %s (relay reachable at %s)", hello.ID, strings.Join(hello.IPs, ", "))
	} else {
		a.logf("Connected as %s", hello.ID)
	}
}

func (a *App) handleRole(role protocol.Role) {
	a.room = role.Room
	a.role = role.Role
	a.board.reset()
	a.view = viewChat

	switch role.Role {
	case protocol.RoleSpectator:
		a.appendChat(fmt.Sprintf("* joined %s as a spectator", role.Room))
	default:
		a.appendChat(fmt.Sprintf("* joined %s playing %s", role.Room, role.Role))
	}
	a.logf("Joined %s as %s", role.Room, role.Role)
	a.updateViewportContent()
}

func (a *App) handleRoster(roster protocol.Roster) {
	if !strings.EqualFold(roster.Room, a.room) {
		return
	}
	players := strings.Join(roster.Players, ",")
	if players == "" {
		players = "none"
	}
	a.rosterLine = fmt.Sprintf("players:%s watchers:%d", players, roster.Spectators)
	a.appendChat(fmt.Sprintf("* roster: players [%s], %d watching", players, roster.Spectators))
	a.updateViewportContent()
}

func (a *App) handleMsg(msg protocol.Msg) {
	if !strings.EqualFold(msg.Room, a.room) {
		return
	}
	sender := msg.From
	if sender == a.connID {
		sender = "you"
	}
	stamp := time.UnixMilli(msg.At).Local().Format("15:04:05")
	a.appendChat(fmt.Sprintf("[%s] %s: %s", stamp, sender, msg.Text))
	a.updateViewportContent()
}

func (a *App) handleGame(game map[string]any) {
	action, _ := game["action"].(string)
	switch action {
	case gameActionMove:
		cell, ok := game["cell"].(float64)
		if !ok {
			return
		}
		mark, _ := game["mark"].(string)
		a.board.applyMove(int(cell), mark)
		if winner := a.board.winner(); winner != "" {
			a.appendChat(fmt.Sprintf("* %s wins!", winner))
			a.logf("%s wins the game", winner)
		} else if a.board.full() {
			a.appendChat("* draw, /restart to go again")
		}
	case gameActionRestart:
		a.board.reset()
		a.appendChat("* board cleared")
	}
	a.updateViewportContent()
}

func (a *App) appendChat(line string) {
	if line == "" {
		return
	}
	a.chat = append(a.chat, line)
}
