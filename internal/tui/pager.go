// Package tui shows a rendered report in a scrollable full-screen pager.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const statusBarHeight = 1

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// Pager is a Bubble Tea model that scrolls through static report text.
type Pager struct {
	title    string
	content  string
	keys     KeyMap
	viewport viewport.Model
	ready    bool
}

// NewPager creates a pager over content.
func NewPager(title, content string) *Pager {
	return &Pager{
		title:    title,
		content:  content,
		keys:     DefaultKeyMap(),
		viewport: viewport.New(80, 20),
	}
}

func (p *Pager) Init() tea.Cmd { return nil }

func (p *Pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.viewport.Width = msg.Width
		p.viewport.Height = max(msg.Height-statusBarHeight, 1)
		if !p.ready {
			p.viewport.SetContent(p.content)
			p.ready = true
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit), key.Matches(msg, p.keys.ForceQuit):
			return p, tea.Quit
		case key.Matches(msg, p.keys.Up):
			p.viewport.ScrollUp(1)
			return p, nil
		case key.Matches(msg, p.keys.Down):
			p.viewport.ScrollDown(1)
			return p, nil
		case key.Matches(msg, p.keys.PageUp):
			p.viewport.HalfPageUp()
			return p, nil
		case key.Matches(msg, p.keys.PageDown):
			p.viewport.HalfPageDown()
			return p, nil
		case key.Matches(msg, p.keys.Home):
			p.viewport.GotoTop()
			return p, nil
		case key.Matches(msg, p.keys.End):
			p.viewport.GotoBottom()
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *Pager) View() string {
	if !p.ready {
		return "loading..."
	}
	return p.viewport.View() + "\n" + p.statusLine()
}

// YOffset returns the first visible line.
func (p *Pager) YOffset() int { return p.viewport.YOffset }

func (p *Pager) statusLine() string {
	var helps []string
	for _, b := range p.keys.ShortHelp() {
		h := b.Help()
		helps = append(helps, h.Key+" "+h.Desc)
	}
	pct := fmt.Sprintf("%3.0f%%", p.viewport.ScrollPercent()*100)
	return statusStyle.Render(p.title + "  " + pct + "  " + strings.Join(helps, " • "))
}

// Run opens the pager on the terminal and blocks until the user quits.
func Run(title, content string) error {
	prog := tea.NewProgram(NewPager(title, content), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("pager requires a real terminal")
		}
		return fmt.Errorf("error running pager: %w", err)
	}
	return nil
}
