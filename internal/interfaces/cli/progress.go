// Package cli renders launch progress in the terminal.
package cli

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jarstage.dev/launcher/internal/core/domain"
)

var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	filledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bytesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Faint(true)
)

type fractionMsg float64

type sampleMsg domain.ProgressSample

type finishedMsg struct{}

// progressModel is the bubbletea model for one launch sequence.
type progressModel struct {
	label    string
	fraction float64
	sample   domain.ProgressSample
	width    int
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case fractionMsg:
		m.fraction = float64(msg)
	case sampleMsg:
		m.sample = domain.ProgressSample(msg)
	case finishedMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		// The sequence itself has no cancellation; quitting only
		// detaches the display.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	barWidth := 40
	if m.width > 0 && m.width-30 < barWidth {
		barWidth = m.width - 30
	}
	if barWidth < 10 {
		barWidth = 10
	}

	filled := int(m.fraction * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", barWidth-filled))

	line := fmt.Sprintf("%s %s %3.0f%%", labelStyle.Render(m.label), bar, m.fraction*100)
	if m.sample.Total > 0 {
		line += " " + bytesStyle.Render(fmt.Sprintf("%s / %s", formatBytes(m.sample.Downloaded), formatBytes(m.sample.Total)))
	} else if m.sample.Downloaded > 0 {
		line += " " + bytesStyle.Render(formatBytes(m.sample.Downloaded))
	}
	return line + "\n"
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// ProgressUI drives the terminal display for a launch. Set implements
// the orchestrator's stage-unit bar and Sample its byte-progress
// feedback; both are safe before Start and after Finish.
type ProgressUI struct {
	program *tea.Program

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewProgressUI creates a UI labelled with the launch description.
func NewProgressUI(label string) *ProgressUI {
	return &ProgressUI{
		program: tea.NewProgram(progressModel{label: label}),
		done:    make(chan struct{}),
	}
}

// Start begins rendering in the background.
func (u *ProgressUI) Start() {
	u.mu.Lock()
	u.running = true
	u.mu.Unlock()
	go func() {
		defer close(u.done)
		u.program.Run()
	}()
}

// Set updates the displayed fraction.
func (u *ProgressUI) Set(fraction float64) {
	if u.active() {
		u.program.Send(fractionMsg(fraction))
	}
}

// Sample updates the displayed byte counters.
func (u *ProgressUI) Sample(s domain.ProgressSample) {
	if u.active() {
		u.program.Send(sampleMsg(s))
	}
}

// Finish stops rendering and waits for the display to settle.
func (u *ProgressUI) Finish() {
	u.mu.Lock()
	wasRunning := u.running
	u.running = false
	u.mu.Unlock()
	if !wasRunning {
		return
	}
	u.program.Send(finishedMsg{})
	<-u.done
}

func (u *ProgressUI) active() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.running
}
