package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/fun-house/pkg/game"
	"github.com/jwebster45206/fun-house/pkg/state"
	"github.com/muesli/reflow/wordwrap"
)

const PlaceHolderText = "Type your answer or direction here..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	title        string
	input        chan<- string
	transcript   []string
	snapshot     *state.Snapshot
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	notice       string

	// Quit confirmation state
	showQuitModal bool
}

type gameEventMsg struct {
	event game.Event
}

type gameOverMsg struct {
	err error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(title string, input chan<- string) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		title:        title,
		input:        input,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
}

// styleLine colors a game output line by what it says.
func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "> "):
		return userStyle.Render(line)
	case strings.HasPrefix(line, "Correct!"), strings.HasPrefix(line, "You have chosen"):
		return successStyle.Render(line)
	case strings.HasPrefix(line, "Incorrect!"):
		return errorStyle.Render(line)
	case strings.HasPrefix(line, "Congratulations!"):
		return titleStyle.Render(line)
	case strings.HasSuffix(line, ": "), strings.HasSuffix(line, ":"):
		return promptStyle.Render(line)
	default:
		return line
	}
}

func writeMetadata(snap *state.Snapshot) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME STATE") + "\n\n")

	if snap == nil {
		content.WriteString("Starting...\n")
		return content.String()
	}

	if len(snap.SessionID) >= 8 {
		content.WriteString("Session:\n")
		content.WriteString(snap.SessionID[:8] + "...\n\n")
	}

	content.WriteString("Character:\n")
	if snap.Character == "" {
		content.WriteString("Not chosen\n\n")
	} else {
		content.WriteString(snap.Character + "\n\n")
	}

	content.WriteString("Room:\n")
	content.WriteString(snap.Room + "\n\n")

	content.WriteString("Rooms beaten:\n")
	content.WriteString(fmt.Sprintf("%d / %d\n\n", snap.BeatenRooms, snap.TotalChallengeRooms))

	content.WriteString("Inventory:\n")
	if len(snap.Inventory) == 0 {
		content.WriteString("Empty\n")
	} else {
		for _, item := range snap.Inventory {
			content.WriteString(fmt.Sprintf("• %s\n", item))
		}
	}

	if snap.Completed {
		content.WriteString("\n" + successStyle.Render("House complete!") + "\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /copy: Copy transcript\n")
	content.WriteString("• /help: Help\n")

	return content.String()
}

// writeChatContent rebuilds the transcript for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 10 {
		chatWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(m.title)) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, line := range m.transcript {
		content.WriteString(styleLine(wordwrap.String(line, chatWidth)) + "\n")
	}

	if m.notice != "" {
		content.WriteString("\n" + promptStyle.Render(m.notice) + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.snapshot))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.notice = ""
			m.transcript = append(m.transcript, "> "+input)
			m.writeChatContent()
			return m, m.submit(input)
		}

	case outputMsg:
		m.transcript = append(m.transcript, msg.line)
		m.writeChatContent()
		return m, nil

	case gameEventMsg:
		snap := msg.event.State
		m.snapshot = &snap
		m.metaViewport.SetContent(writeMetadata(m.snapshot))
		return m, nil

	case gameOverMsg:
		return m, tea.Quit
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// submit hands a line to the game loop without blocking the UI.
func (m ConsoleUI) submit(line string) tea.Cmd {
	input := m.input
	return func() tea.Msg {
		input <- line
		return nil
	}
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		m.notice = `Type what the prompts ask for and press Enter.
From outside: 'enter' or 'quit'. In the lobby: a room number or 'exit'.
After a challenge: 'b' returns to the lobby.`

	case "/copy":
		if err := clipboard.WriteAll(strings.Join(m.transcript, "\n")); err != nil {
			m.notice = "Could not copy transcript: " + err.Error()
		} else {
			m.notice = "Transcript copied to clipboard."
		}

	default:
		m.notice = fmt.Sprintf("Unknown command %s. Try /help.", cmd)
	}

	m.writeChatContent()
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case outputMsg:
		m.transcript = append(m.transcript, msg.line)

	case gameOverMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.writeChatContent()
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the Fun House?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress is not saved between runs.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 0))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
