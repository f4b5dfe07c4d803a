// ABOUTME: Rendering for the terminal main window.
// ABOUTME: Draws page tabs, slider forms, the data table, and the status line.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/minds/internal/form"
	"github.com/harperreed/minds/internal/models"
	"github.com/harperreed/minds/internal/navigation"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tabStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTab  = tabStyle.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true)
	focusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	labelStyle = lipgloss.NewStyle().Width(12)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	frameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// pixelsPerCell scales the fixed page sizes down to terminal columns.
const pixelsPerCell = 4

var tabLabels = map[navigation.Page]string{
	navigation.PageMentalMental: "1 Mental",
	navigation.PageWEFE:         "2 WEFE",
	navigation.PageCSPR:         "3 CSPR",
	navigation.PageData:         "4 Data",
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	tabs := make([]string, 0, len(navigation.Pages))
	for _, p := range navigation.Pages {
		style := tabStyle
		if p == m.nav.Current() {
			style = activeTab
		}
		tabs = append(tabs, style.Render(tabLabels[p]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	var body string
	if c, ok := m.nav.Current().Category(); ok {
		body = m.formView(m.forms[c])
	} else {
		body = m.dataView()
	}
	b.WriteString(frameStyle.Width(m.frameWidth()).Render(body))
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errStyle.Render("✗ " + m.status))
		} else {
			b.WriteString(okStyle.Render("✓ " + m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.helpLine()))
	return b.String()
}

// frameWidth converts the fixed page size into terminal cells.
func (m *Model) frameWidth() int {
	w := m.frame.size.Width / pixelsPerCell
	if m.nav.Current() != navigation.PageData && w < 36 {
		w = 36
	}
	if m.width > 0 && w > m.width-2 {
		w = m.width - 2
	}
	return w
}

func (m *Model) formView(f *form.Form) string {
	var b strings.Builder
	spec := f.Spec()
	page := m.nav.Current()
	focus := m.focused(page, len(spec.Fields))

	b.WriteString(titleStyle.Render(spec.Title))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Date") + f.Date() + "\n")
	b.WriteString(labelStyle.Render("Time") + f.Time() + "\n\n")

	values := f.Sliders()
	for i, field := range spec.Fields {
		bar := sliderBar(values[i], field)
		line := fmt.Sprintf("%s%s %2d", labelStyle.Render(field.Label), bar, values[i])
		if i == focus {
			line = focusStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if sum, ok := f.Summary(); ok {
		b.WriteString("\n")
		b.WriteString("  " + labelStyle.Render("Sum") + fmt.Sprintf("%d", sum) + "\n")
	}
	return b.String()
}

func sliderBar(v int, f models.Field) string {
	span := f.Max - f.Min
	if span <= 0 {
		return ""
	}
	filled := v - f.Min
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", span-filled) + "]"
}

func (m *Model) dataView() string {
	var b strings.Builder

	names := make([]string, 0, len(m.projections))
	for i, p := range m.projections {
		spec := models.MustSpec(p.Category())
		label := fmt.Sprintf("%s (%d)", spec.Table, p.Len())
		if i == m.dataTable {
			label = activeTab.Render(label)
		} else {
			label = tabStyle.Render(label)
		}
		names = append(names, label)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, names...))
	b.WriteString("\n\n")

	if m.projection().Len() == 0 {
		b.WriteString(dimStyle.Render("No rows yet."))
		return b.String()
	}
	b.WriteString(m.table.View())
	if n := len(m.selected); n > 0 {
		b.WriteString(fmt.Sprintf("\n%d selected", n))
	}
	return b.String()
}

func (m *Model) helpLine() string {
	if m.nav.Current() == navigation.PageData {
		return "1-4 pages • tab table • ↑/↓ move • space select • x delete • q quit"
	}
	return "1-4 pages • tab/↑/↓ field • ←/→ adjust • ctrl+s save • q quit"
}
