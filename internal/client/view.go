package client

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"
	"github.com/mattn/go-runewidth"
)

var homeContent = buildHomeContent()

func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.viewport.View())
	b.WriteString("\n")

	if panel := a.boardPanel(); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n")
	}

	if a.showHelp && a.helpView != "" {
		b.WriteString(a.styles.help.Render(a.helpView))
		b.WriteString("\n")
	}

	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.logLineView())
	b.WriteString("\n")
	b.WriteString(a.statusLine())

	return b.String()
}

func (a *App) updateViewportContent() {
	switch a.view {
	case viewChat:
		if !a.hasActiveRoom() {
			a.viewport.SetContent(homeContent)
			return
		}
		width := a.viewport.Width
		if width <= 0 {
			width = a.width
		}
		if len(a.chat) == 0 {
			a.viewport.SetContent("No messages yet. Type and press Enter to chat.")
		} else {
			a.viewport.SetContent(strings.Join(wrapLines(a.chat, width), "\n"))
		}
		a.viewport.GotoBottom()
	case viewHelp:
		a.viewport.SetContent(a.renderHelpView())
	default:
		a.viewport.SetContent(homeContent)
	}
}

// boardPanel renders the grid between chat and input while a room is active.
func (a *App) boardPanel() string {
	if a.view != viewChat || !a.hasActiveRoom() {
		return ""
	}
	title := fmt.Sprintf("board: %s to move", a.board.next)
	if winner := a.board.winner(); winner != "" {
		title = fmt.Sprintf("board: %s won", winner)
	} else if a.board.full() {
		title = "board: draw"
	}
	return a.styles.label.Render(title) + "\n" + a.styles.board.Render(a.board.render())
}

func (a *App) boardPanelHeight() int {
	if panel := a.boardPanel(); panel != "" {
		return countLines(panel)
	}
	return 0
}

func (a *App) updateViewportSize() {
	if a.height == 0 {
		return
	}
	const fixed = 3
	height := a.height - fixed - a.helpH - a.boardPanelHeight()
	if height < 3 {
		height = 3
	}
	a.viewport.Height = height
	a.viewport.Width = a.width
}

func (a *App) updateInputWidth() {
	width := a.width
	if width <= 0 {
		width = 60
	}
	promptWidth := lipgloss.Width(a.input.Prompt)
	usable := width - promptWidth - 1
	if usable < 10 {
		usable = 10
	}
	a.input.Width = usable
}

func (a *App) updateHelp() {
	value := a.input.Value()
	if value == "" || !strings.HasPrefix(value, string(a.cfg.CommandPrefix)) {
		a.showHelp = false
		a.helpView = ""
		a.helpH = 0
		return
	}

	token := value
	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		token = value[:idx]
	}

	bindings := a.matchingBindings(token)
	if len(bindings) == 0 {
		a.showHelp = false
		a.helpView = ""
		a.helpH = 0
		return
	}

	a.showHelp = true
	a.helper.Width = a.width
	view := strings.TrimRight(a.helper.View(dynamicKeyMap{keys: bindings}), "\n")
	a.helpView = view
	a.helpH = countLines(view)
}

func (a *App) matchingBindings(prefix string) []key.Binding {
	prefix = strings.ToLower(prefix)
	var bindings []key.Binding
	for _, c := range a.commands {
		if strings.HasPrefix(c.trigger, prefix) {
			bindings = append(bindings, key.NewBinding(
				key.WithKeys(c.usage),
				key.WithHelp(c.usage, c.description),
			))
		}
	}
	return bindings
}

func (a *App) statusLine() string {
	status := "OFFLINE"
	if a.statusOnline {
		status = "ONLINE"
	}

	id := a.connID
	if id == "" {
		id = "-"
	}

	parts := []string{
		a.styles.title.Render("lanrelay"),
		a.styles.view.Render(strings.ToUpper(a.view.String())),
		a.statusValueStyle(status).Render(status),
		a.styles.label.Render("Server") + ": " + a.styles.value.Render(a.serverAddr),
		a.styles.label.Render("ID") + ": " + a.styles.value.Render(id),
		a.styles.label.Render("Room") + ": " + a.styles.value.Render(a.room),
		a.styles.label.Render("Role") + ": " + a.styles.value.Render(a.role),
		a.styles.label.Render("Roster") + ": " + a.styles.value.Render(a.rosterLine),
	}

	return strings.Join(parts, " | ")
}

func (a *App) statusValueStyle(status string) lipgloss.Style {
	if strings.EqualFold(status, "ONLINE") {
		return a.styles.statusOnline
	}
	return a.styles.statusOffline
}

func (a *App) logLineView() string {
	labelStyle := a.styles.logLabel
	bodyStyle := a.styles.logBody
	if a.logLine.level == logLevelError {
		labelStyle = a.styles.logLabelError
		bodyStyle = a.styles.logBodyError
	}
	return labelStyle.Render(a.logLine.label) + " " + bodyStyle.Render(a.logLine.body)
}

func buildStyles() styleSet {
	base := lipgloss.NewStyle()
	return styleSet{
		title:         base.Foreground(lipgloss.Color("13")).Bold(true),
		view:          base.Foreground(lipgloss.Color("14")).Bold(true),
		statusOnline:  base.Foreground(lipgloss.Color("10")).Bold(true),
		statusOffline: base.Foreground(lipgloss.Color("9")).Bold(true),
		label:         base.Foreground(lipgloss.Color("8")),
		value:         base.Foreground(lipgloss.Color("15")),
		logLabel:      base.Foreground(lipgloss.Color("11")).Bold(true),
		logBody:       base.Foreground(lipgloss.Color("7")),
		logLabelError: base.Foreground(lipgloss.Color("9")).Bold(true),
		logBodyError:  base.Foreground(lipgloss.Color("9")),
		help:          base.Foreground(lipgloss.Color("12")),
		board:         base.Foreground(lipgloss.Color("10")),
	}
}

func (a *App) renderHelpView() string {
	var b strings.Builder
	b.WriteString("lanrelay commands\n\n")
	for _, c := range a.commands {
		b.WriteString(fmt.Sprintf("%-20s %s\n", c.usage, c.description))
	}
	b.WriteString("\nAnything without a leading ")
	b.WriteString(string(a.cfg.CommandPrefix))
	b.WriteString(" is sent as chat to your room.")
	return b.String()
}

func buildHomeContent() string {
	fig := figure.NewColorFigure("LAN RELAY", "3-d", "green", true)
	art := strings.TrimRight(fig.String(), "\n")
	info := []string{
		"Use /connect to reach a relay on your network.",
		"Use /join <room> to take a seat; the first two in are X and O.",
		"Use /move <1-9> to play, /restart to clear the board.",
		"Everyone else in the room watches and chats.",
	}

	var b strings.Builder
	b.WriteString(art)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(info, "\n"))
	return b.String()
}

func wrapLines(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	const minWidth = 10
	if width < minWidth {
		width = minWidth
	}

	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		segment := line
		if segment == "" {
			wrapped = append(wrapped, "")
			continue
		}
		for len(segment) > 0 {
			if runewidth.StringWidth(segment) <= width {
				wrapped = append(wrapped, segment)
				break
			}
			cut := wrapCutIndex(segment, width)
			part := strings.TrimRight(segment[:cut], " ")
			if part == "" && cut > 0 {
				part = segment[:cut]
			}
			wrapped = append(wrapped, part)
			segment = strings.TrimLeft(segment[cut:], " ")
			if segment == "" {
				break
			}
		}
	}
	return wrapped
}

func wrapCutIndex(s string, limit int) int {
	var width int
	lastSpace := -1
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if width+rw > limit {
			if lastSpace >= 0 {
				return lastSpace + 1
			}
			if width == 0 {
				return i + 1
			}
			return i
		}
		width += rw
		if unicode.IsSpace(r) {
			lastSpace = i
		}
	}
	return len(s)
}

type dynamicKeyMap struct {
	keys []key.Binding
}

func (d dynamicKeyMap) ShortHelp() []key.Binding {
	return d.keys
}

func (d dynamicKeyMap) FullHelp() [][]key.Binding {
	if len(d.keys) == 0 {
		return [][]key.Binding{}
	}
	return [][]key.Binding{d.keys}
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
