// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	wpprogress "github.com/matt-FFFFFF/withprogress/internal/progress"
)

const (
	durationRounding = 100 * time.Millisecond
	minBarWidth      = 10
	barMargin        = 40
)

// ProgressEventMsg wraps a progress event for the tea framework.
type ProgressEventMsg struct {
	Event wpprogress.Event
}

// DoneMsg is sent when the wrapped work has returned.
type DoneMsg struct {
	Err error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.mutex.Lock()
		m.width = msg.Width
		m.bar.Width = max(minBarWidth, min(defaultBarWidth, msg.Width-barMargin))
		m.mutex.Unlock()

		return m, nil

	case ProgressEventMsg:
		m.processProgressEvent(msg.Event)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.mutex.Lock()
		m.spinner, cmd = m.spinner.Update(msg)
		m.mutex.Unlock()

		return m, cmd

	case DoneMsg:
		m.finish(msg.Err)
		return m, tea.Quit
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.mutex.Lock()
		m.quitting = true
		m.mutex.Unlock()

		return m, tea.Quit
	}

	return m, nil
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var view strings.Builder

	if m.title != "" {
		view.WriteString(m.styles.Title.Render(m.title))
		view.WriteString("\n")
	}

	m.renderTree(&view, m.rootNode, "", true)

	switch {
	case m.quitting:
		view.WriteString(m.styles.Failed.Render("Interrupted, waiting for running steps..."))
		view.WriteString("\n")
	case m.completed && m.err != nil:
		view.WriteString(m.styles.Failed.Render("Completed with errors"))
		view.WriteString("\n")
	case m.completed:
		view.WriteString(m.styles.Success.Render("Completed"))
		view.WriteString("\n")
	default:
		view.WriteString(m.styles.Help.Render("'q' to quit"))
		view.WriteString("\n")
	}

	return view.String()
}

// renderTree recursively renders the run tree.
func (m *Model) renderTree(b *strings.Builder, node *RunNode, prefix string, isLast bool) {
	if len(node.Path) == 0 {
		for i, child := range node.Children {
			m.renderTree(b, child, "", i == len(node.Children)-1)
		}

		return
	}

	m.renderNode(b, node, prefix, isLast)

	childPrefix := prefix
	if isLast {
		childPrefix += "    "
	} else {
		childPrefix += "│   "
	}

	for i, child := range node.Children {
		m.renderTree(b, child, childPrefix, i == len(node.Children)-1)
	}
}

// renderNode renders a single run: status, title, bar or spinner, count,
// elapsed time and any error.
func (m *Model) renderNode(b *strings.Builder, node *RunNode, prefix string, isLast bool) {
	info := node.Info()

	connector := "├── "
	if isLast {
		connector = "└── "
	}

	var icon, name string

	switch info.Status {
	case StatusRunning:
		icon = m.spinner.View()
		name = m.styles.Running.Render(info.Name)
	case StatusSuccess:
		icon = m.styles.Success.Render("✓")
		name = m.styles.Success.Render(info.Name)
	case StatusFailed:
		icon = m.styles.Failed.Render("✗")
		name = m.styles.Failed.Render(info.Name)
	default:
		icon = m.styles.Pending.Render("…")
		name = m.styles.Pending.Render(info.Name)
	}

	b.WriteString(m.styles.TreeBranch.Render(prefix + connector))
	b.WriteString(icon)
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(" ")

	if info.Total >= 0 {
		ratio := 1.0
		if info.Total > 0 {
			ratio = min(1.0, float64(info.Current)/float64(info.Total))
		}

		b.WriteString(m.bar.ViewAs(ratio))
		b.WriteString(m.styles.Count.Render(fmt.Sprintf(" %d/%d", info.Current, info.Total)))
	} else {
		b.WriteString(m.styles.Count.Render(fmt.Sprintf("%d", info.Current)))
	}

	if info.StartTime != nil {
		end := time.Now()
		if info.EndTime != nil {
			end = *info.EndTime
		}

		b.WriteString(m.styles.Count.Render(fmt.Sprintf(" (%v)", end.Sub(*info.StartTime).Round(durationRounding))))
	}

	if info.ErrorMsg != "" {
		b.WriteString(" ")
		b.WriteString(m.styles.Error.Render("Error: " + info.ErrorMsg))
	}

	b.WriteString("\n")
}
