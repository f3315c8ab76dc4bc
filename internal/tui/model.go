// Package tui is the terminal client. It renders every state the engine
// publishes and turns key presses into commands.
package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/commands"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
)

// Engine is the part of the game engine the client drives.
type Engine interface {
	Dispatch(cmd commands.Command) error
	State() *state.GameState
	InitialSnapshot() *state.GameState
	Subscribe(listener game.Listener) func()
}

// PlayedCounter reports how many cards were played this turn.
// *watchers.CardsPlayedThisTurnWatcher satisfies it.
type PlayedCounter interface {
	Count() int
}

// Options tunes the client.
type Options struct {
	LogLines    int
	ShowSummary bool
	// Played, when set, adds a cards-played-this-turn counter to the hand.
	Played PlayedCounter
}

// feed keeps the latest state published by the engine.
type feed struct {
	mu     sync.Mutex
	latest *state.GameState
}

func (f *feed) OnState(s *state.GameState) {
	f.mu.Lock()
	f.latest = s
	f.mu.Unlock()
}

func (f *feed) State() *state.GameState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest
}

// Model is the bubbletea model of the client.
type Model struct {
	engine      Engine
	feed        *feed
	unsubscribe func()
	opts        Options

	viewport viewport.Model
	help     help.Model
	err      error
	width    int
}

// NewModel subscribes to eng and returns a model showing its current state.
func NewModel(eng Engine, opts Options) Model {
	if opts.LogLines <= 0 {
		opts.LogLines = 12
	}
	f := &feed{latest: eng.State()}
	m := Model{
		engine:      eng,
		feed:        f,
		unsubscribe: eng.Subscribe(f),
		opts:        opts,
		viewport:    viewport.New(80, opts.LogLines),
		help:        help.New(),
		width:       80,
	}
	m.refreshLog()
	return m
}

// Close detaches the model from the engine.
func (m Model) Close() {
	m.unsubscribe()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.help.Width = msg.Width
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, keys.Advance):
			if m.feed.State().LoopStage == state.StageStory {
				m.dispatch(commands.NewAdvanceJournal())
			}
			return m, nil
		case key.Matches(msg, keys.Pick):
			if cmd := m.pick(int(msg.String()[0] - '1')); cmd != nil {
				m.dispatch(cmd)
			}
			return m, nil
		case key.Matches(msg, keys.EndTurn):
			m.dispatch(commands.NewEndTurn())
			return m, nil
		case key.Matches(msg, keys.NewGame):
			m.dispatch(commands.NewStartNewGame(m.engine.InitialSnapshot()))
			return m, nil
		case key.Matches(msg, keys.Sound):
			m.dispatch(commands.NewToggleSound())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// pick maps a 0-based slot to a card in hand or to an event choice,
// depending on the stage.
func (m *Model) pick(slot int) commands.Command {
	s := m.feed.State()
	switch s.LoopStage {
	case state.StagePlayer:
		if slot < len(s.Hand) {
			return commands.NewPlayCard(s.Hand[slot].ID)
		}
	case state.StageEvent:
		if slot < len(s.Event.Choices) {
			return commands.NewResolveEventChoice(s.Event.Choices[slot].ID)
		}
	}
	return nil
}

func (m *Model) dispatch(cmd commands.Command) {
	m.err = m.engine.Dispatch(cmd)
	m.refreshLog()
}

func (m *Model) refreshLog() {
	s := m.feed.State()
	m.viewport.SetContent(renderLog(s, m.viewport.Width))
	if s.AutoScrollLog {
		m.viewport.GotoTop()
	}
}

// Run starts the client on the terminal and blocks until the player quits.
func Run(eng Engine, opts Options) error {
	model := NewModel(eng, opts)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
