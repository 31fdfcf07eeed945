// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	wpprogress "github.com/matt-FFFFFF/withprogress/internal/progress"
)

const defaultBarWidth = 30

// RunStatus is the state of a progress run in the TUI.
type RunStatus int

const (
	StatusPending RunStatus = iota
	StatusRunning
	StatusSuccess
	StatusFailed
)

// String returns a string representation of the run status.
func (s RunStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunNode is a progress run in the tree of runs.
type RunNode struct {
	Path      []string   // Titles of the enclosing runs and this one
	Name      string     // Title of the run
	Status    RunStatus  // Current status
	Total     int        // Expected steps, negative when unknown
	Current   int        // Steps completed so far
	StartTime *time.Time // When the run started
	EndTime   *time.Time // When the run finished
	ErrorMsg  string     // Error message if failed
	Children  []*RunNode // Runs started inside this one
	mutex     sync.RWMutex
}

// NodeInfo is a consistent snapshot of a RunNode.
type NodeInfo struct {
	Name      string
	Status    RunStatus
	Total     int
	Current   int
	StartTime *time.Time
	EndTime   *time.Time
	ErrorMsg  string
}

// NewRunNode creates a pending run node.
func NewRunNode(path []string, name string) *RunNode {
	pathCopy := make([]string, len(path))
	copy(pathCopy, path)

	return &RunNode{
		Path:     pathCopy,
		Name:     name,
		Status:   StatusPending,
		Total:    wpprogress.Indeterminate,
		Children: make([]*RunNode, 0),
	}
}

// Apply updates the node from a progress event.
func (rn *RunNode) Apply(event wpprogress.Event) {
	rn.mutex.Lock()
	defer rn.mutex.Unlock()

	rn.Total = event.Total
	rn.Current = event.Current
	now := event.Timestamp

	if now.IsZero() {
		now = time.Now()
	}

	switch event.Type {
	case wpprogress.EventStarted, wpprogress.EventStep:
		rn.Status = StatusRunning
		if rn.StartTime == nil {
			rn.StartTime = &now
		}
	case wpprogress.EventCompleted:
		rn.Status = StatusSuccess
		rn.EndTime = &now
	case wpprogress.EventFailed:
		rn.Status = StatusFailed
		rn.EndTime = &now

		if event.Data.Error != nil {
			rn.ErrorMsg = event.Data.Error.Error()
		}
	}
}

// Info returns a snapshot of the node.
func (rn *RunNode) Info() NodeInfo {
	rn.mutex.RLock()
	defer rn.mutex.RUnlock()

	return NodeInfo{
		Name:      rn.Name,
		Status:    rn.Status,
		Total:     rn.Total,
		Current:   rn.Current,
		StartTime: rn.StartTime,
		EndTime:   rn.EndTime,
		ErrorMsg:  rn.ErrorMsg,
	}
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	title     string
	rootNode  *RunNode
	nodeMap   map[string]*RunNode // Maps path strings to nodes for quick lookup
	width     int
	quitting  bool
	completed bool  // Set once the wrapped work has returned
	err       error // Error of the wrapped work
	spinner   spinner.Model
	bar       progress.Model
	mutex     sync.RWMutex

	// Style definitions
	styles *Styles
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title      lipgloss.Style
	Pending    lipgloss.Style
	Running    lipgloss.Style
	Success    lipgloss.Style
	Failed     lipgloss.Style
	Count      lipgloss.Style
	Error      lipgloss.Style
	Help       lipgloss.Style
	TreeBranch lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Count: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1),
		TreeBranch: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// NewModel creates a new TUI model. title heads the view.
func NewModel(ctx context.Context, title string) *Model {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(defaultBarWidth),
	)

	return &Model{
		ctx:      ctx,
		title:    title,
		rootNode: NewRunNode([]string{}, "root"),
		nodeMap:  make(map[string]*RunNode),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		bar:      bar,
		styles:   NewStyles(),
	}
}

// pathToString converts a run path to a string key.
func pathToString(path []string) string {
	return strings.Join(path, "\x00")
}

// getOrCreateNode gets or creates the node at path, creating its parents.
func (m *Model) getOrCreateNode(path []string) *RunNode {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i := 1; i <= len(path); i++ {
		key := pathToString(path[:i])
		if _, exists := m.nodeMap[key]; exists {
			continue
		}

		node := NewRunNode(path[:i], path[i-1])
		m.nodeMap[key] = node

		parent := m.rootNode
		if i > 1 {
			parent = m.nodeMap[pathToString(path[:i-1])]
		}

		parent.Children = append(parent.Children, node)
	}

	return m.nodeMap[pathToString(path)]
}

// processProgressEvent applies an event to the run tree.
func (m *Model) processProgressEvent(event wpprogress.Event) {
	if len(event.Path) == 0 {
		return
	}

	m.getOrCreateNode(event.Path).Apply(event)
}

// finish records the outcome of the wrapped work.
func (m *Model) finish(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.completed = true
	m.err = err
}
