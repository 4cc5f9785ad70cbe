// Package client implements the lanrelay terminal client: a bubbletea
// program that connects to a relay, joins rooms, chats, and plays
// tic-tac-toe over relayed game frames.
package client

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marjorv/lanrelay/internal/config"
)

type view int

const (
	viewHome view = iota
	viewChat
	viewHelp
)

func (v view) String() string {
	switch v {
	case viewChat:
		return "chat"
	case viewHelp:
		return "help"
	default:
		return "home"
	}
}

type logLevel int

const (
	logLevelInfo logLevel = iota
	logLevelError
)

type logEntry struct {
	level logLevel
	label string
	body  string
}

type commandSpec struct {
	trigger     string
	usage       string
	description string
}

type styleSet struct {
	title         lipgloss.Style
	view          lipgloss.Style
	statusOnline  lipgloss.Style
	statusOffline lipgloss.Style
	label         lipgloss.Style
	value         lipgloss.Style
	logLabel      lipgloss.Style
	logBody       lipgloss.Style
	logLabelError lipgloss.Style
	logBodyError  lipgloss.Style
	help          lipgloss.Style
	board         lipgloss.Style
}

// App is the bubbletea model for the relay client.
type App struct {
	cfg     config.ClientConfig
	session *Session

	serverAddr   string
	statusOnline bool
	connID       string
	room         string
	role         string
	rosterLine   string

	board    board
	chat     []string
	view     view
	width    int
	height   int
	input    textinput.Model
	viewport viewport.Model
	helper   help.Model
	showHelp bool
	helpView string
	helpH    int
	styles   styleSet
	logLine  logEntry
	commands []commandSpec
}

// NewApp returns the client model with defaults applied.
func NewApp(cfg config.ClientConfig) *App {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "type a message, or / for commands"
	input.Focus()

	a := &App{
		cfg:        cfg,
		serverAddr: cfg.ServerAddr,
		room:       "-",
		role:       "-",
		rosterLine: "-",
		board:      newBoard(),
		chat:       make([]string, 0, 128),
		input:      input,
		viewport:   viewport.New(0, 0),
		helper:     help.New(),
		styles:     buildStyles(),
		commands:   commandCatalog(),
	}
	a.logf("Welcome to lanrelay. Use %cconnect to reach a relay.", cfg.CommandPrefix)
	return a
}

// Init is part of the tea.Model interface.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles user input and session events.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.updateViewportSize()
		a.updateInputWidth()
		a.updateViewportContent()
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case connectResultMsg:
		return a.handleConnectResult(m)
	case frameMsg:
		return a.handleFrame(m)
	case sessionClosedMsg:
		return a.handleSessionClosed(m)
	default:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(m)
		return a, cmd
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return a, a.quit()
	case tea.KeyTab:
		a.handleTabCompletion()
		return a, nil
	case tea.KeyPgUp:
		a.viewport.LineUp(a.viewport.Height)
		return a, nil
	case tea.KeyPgDown:
		a.viewport.LineDown(a.viewport.Height)
		return a, nil
	case tea.KeyEnter:
		value := a.input.Value()
		a.input.Reset()
		cmd := a.handleSubmit(value)
		a.updateHelp()
		a.updateViewportSize()
		a.updateViewportContent()
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.updateHelp()
	a.updateViewportSize()
	return a, cmd
}

func (a *App) quit() tea.Cmd {
	if a.session != nil {
		_ = a.session.Close()
		a.session = nil
	}
	a.statusOnline = false
	return tea.Quit
}

func (a *App) isConnected() bool {
	return a.session != nil && a.statusOnline
}

func (a *App) hasActiveRoom() bool {
	return a.room != "" && a.room != "-"
}

func (a *App) logf(format string, args ...any) {
	a.logLine = logEntry{level: logLevelInfo, label: "info:", body: fmt.Sprintf(format, args...)}
}

func (a *App) logErrorf(format string, args ...any) {
	a.logLine = logEntry{level: logLevelError, label: "error:", body: fmt.Sprintf(format, args...)}
}

func commandCatalog() []commandSpec {
	return []commandSpec{
		{"/connect", "/connect [address]", "Connect to a relay server"},
		{"/join", "/join <room>", "Join or create a room"},
		{"/move", "/move <1-9>", "Place your mark on a cell"},
		{"/restart", "/restart", "Clear the board for everyone"},
		{"/board", "/board", "Reprint the board in chat"},
		{"/chat", "/chat", "Switch to the chat view"},
		{"/help", "/help", "Browse all commands"},
		{"/quit", "/quit", "Exit the client"},
	}
}
