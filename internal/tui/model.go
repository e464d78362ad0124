// Package tui provides the interactive order browser. It is a pure
// consumer of the store and fetch packages: every mutation goes
// through the store's replacing operations and the view is re-derived
// from the filter set afterwards.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scbirs/order-explorer/internal/domain"
	"github.com/scbirs/order-explorer/internal/fetch"
	"github.com/scbirs/order-explorer/internal/store"
)

// filterMode is the three-way state of an annotation filter toggle:
// off, matching orders with the flag, matching orders without it.
type filterMode int

const (
	filterOff filterMode = iota
	filterWith
	filterWithout
)

type fetchDoneMsg fetch.Result

type progressTickMsg struct{}

// Model is the bubbletea model for the order browser.
type Model struct {
	st      store.Store
	path    string
	rotator *store.Rotator
	runner  *fetch.Runner

	filters    *domain.FilterSet
	view       []domain.Order
	cursor     int
	itemCursor int

	modes map[string]filterMode

	searching bool
	search    textinput.Model

	fetchResult <-chan fetch.Result
	fetching    bool

	status  string
	failed  bool
	confirm bool

	width  int
	height int
}

// New creates the order browser over a loaded store.
func New(st store.Store, path string, rotator *store.Rotator) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "name, email, note, item..."
	search.CharLimit = 100

	m := Model{
		st:      st,
		path:    path,
		rotator: rotator,
		runner:  fetch.NewRunner(),
		filters: domain.NewFilterSet(st.Orders),
		modes:   map[string]filterMode{},
		search:  search,
	}
	m.view = m.filters.Derive()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(st store.Store, path string, rotator *store.Rotator) error {
	_, err := tea.NewProgram(New(st, path, rotator), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// Store exposes the current snapshot, mainly for tests.
func (m Model) Store() store.Store { return m.st }

// View list selection helpers.

func (m Model) selectedOrder() (domain.Order, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view) {
		return domain.Order{}, false
	}
	return m.view[m.cursor], true
}

func (m Model) selectedItem() (domain.LineItem, bool) {
	o, ok := m.selectedOrder()
	if !ok {
		return domain.LineItem{}, false
	}
	if m.itemCursor < 0 || m.itemCursor >= len(o.LineItems) {
		return domain.LineItem{}, false
	}
	return o.LineItems[m.itemCursor], true
}

// rebind re-derives the view after the store or a filter changed. The
// active filter names survive via CloneOnto; annotation-based
// predicates are re-added so they read the current annotations rather
// than the snapshot they were built against.
func (m *Model) rebind() {
	m.filters = m.filters.CloneOnto(m.st.Orders)
	lookup := m.st.Lookup()
	for name, mode := range m.modes {
		if mode == filterOff {
			continue
		}
		want := mode == filterWith
		switch name {
		case domain.FilterDone:
			m.filters.Add(name, domain.DonePredicate(lookup, want))
		case domain.FilterPaid:
			m.filters.Add(name, domain.PaidPredicate(lookup, want))
		case domain.FilterInStock:
			m.filters.Add(name, domain.InStockPredicate(lookup, want))
		}
	}
	m.view = m.filters.Derive()
	if m.cursor >= len(m.view) {
		m.cursor = len(m.view) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.itemCursor = 0
}

// cycleFilter advances an annotation filter off -> with -> without -> off.
func (m *Model) cycleFilter(name string) {
	switch m.modes[name] {
	case filterOff:
		m.modes[name] = filterWith
	case filterWith:
		m.modes[name] = filterWithout
	default:
		m.modes[name] = filterOff
		m.filters.Remove(name)
	}
	m.rebind()
}

// toggleAnnotation flips one flag on the selected line item.
func (m *Model) toggleAnnotation(flip func(domain.Annotation) domain.Annotation) {
	item, ok := m.selectedItem()
	if !ok {
		return
	}
	selected, _ := m.selectedOrder()
	m.st = m.st.SetAnnotation(item.ID, flip(m.st.AnnotationFor(item.ID)))
	keepItem := m.itemCursor
	m.rebind()
	// Keep the edited order selected if it survived the re-derive.
	for i, o := range m.view {
		if o.ID == selected.ID {
			m.cursor = i
			m.itemCursor = keepItem
			break
		}
	}
	m.status = "edited (unsaved)"
	m.failed = false
}

func (m *Model) save() {
	saved, err := store.Save(m.path, m.st)
	if err != nil {
		m.status = err.Error()
		m.failed = true
		return
	}
	m.st = saved
	m.status = "saved"
	m.failed = false
}

// startFetch launches the background refresh unless one is running.
func (m *Model) startFetch() tea.Cmd {
	if m.st.User.Settings.IsEmpty() {
		m.status = "no API settings configured"
		m.failed = true
		return nil
	}
	if _, err := m.rotator.Next(m.st); err != nil {
		m.status = "backup failed: " + err.Error()
	}
	done, err := m.runner.Start(context.Background(), *m.st.User.Settings)
	if err != nil {
		m.status = err.Error()
		m.failed = true
		return nil
	}
	m.fetchResult = done
	m.fetching = true
	m.failed = false
	return m.pollFetch()
}

// pollFetch waits for either the fetch result or the next progress
// repaint.
func (m Model) pollFetch() tea.Cmd {
	done := m.fetchResult
	return func() tea.Msg {
		select {
		case result := <-done:
			return fetchDoneMsg(result)
		case <-time.After(200 * time.Millisecond):
			return progressTickMsg{}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case progressTickMsg:
		if !m.fetching {
			return m, nil
		}
		return m, m.pollFetch()

	case fetchDoneMsg:
		m.fetching = false
		m.fetchResult = nil
		if msg.Err != nil {
			if fetch.IsAuthError(msg.Err) {
				m.status = "credentials rejected; update settings"
			} else {
				m.status = "fetch failed: " + msg.Err.Error()
			}
			m.failed = true
			return m, nil
		}
		m.st = m.st.ReplaceOrders(msg.Orders)
		m.rebind()
		m.save()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	if msg.String() != "q" {
		m.confirm = false
	}

	switch msg.String() {
	case "q", "esc":
		if m.st.Dirty() && !m.confirm {
			m.confirm = true
			m.status = "unsaved changes: w saves, q quits anyway"
			m.failed = false
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.itemCursor = 0
		}
	case "down", "j":
		if m.cursor < len(m.view)-1 {
			m.cursor++
			m.itemCursor = 0
		}
	case "left", "h":
		if m.itemCursor > 0 {
			m.itemCursor--
		}
	case "right", "l":
		if o, ok := m.selectedOrder(); ok && m.itemCursor < len(o.LineItems)-1 {
			m.itemCursor++
		}
	case "s":
		m.toggleAnnotation(func(a domain.Annotation) domain.Annotation {
			return a.WithInStock(!a.InStock)
		})
	case "p":
		m.toggleAnnotation(func(a domain.Annotation) domain.Annotation {
			return a.WithPaid(!a.Paid)
		})
	case "d":
		m.toggleAnnotation(func(a domain.Annotation) domain.Annotation {
			return a.WithDone(!a.Done)
		})
	case "S":
		m.cycleFilter(domain.FilterInStock)
	case "P":
		m.cycleFilter(domain.FilterPaid)
	case "D":
		m.cycleFilter(domain.FilterDone)
	case "/":
		m.searching = true
		m.search.SetValue("")
		m.search.Focus()
	case "r":
		if !m.fetching {
			return m, m.startFetch()
		}
	case "w":
		m.save()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := m.search.Value()
		m.searching = false
		m.search.Blur()
		if query == "" {
			m.filters.Remove(domain.FilterSearch)
		} else {
			m.filters.Add(domain.FilterSearch, domain.SearchPredicate(query))
		}
		m.rebind()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.filters.Remove(domain.FilterSearch)
		m.rebind()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}
