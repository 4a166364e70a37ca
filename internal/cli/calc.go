package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
)

const (
	fieldType = iota
	fieldDuration
	fieldAccess
	fieldReferral
	fieldCount
)

var (
	calcTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	calcLabelStyle    = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("241"))
	calcFocusStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	calcOptionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	calcSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Underline(true)
	calcTotalStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	calcErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	calcHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	calcBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2)
)

// calcModel is the interactive pricing calculator
type calcModel struct {
	calc        *pricing.Calculator
	credits     int
	focus       int
	typeIdx     int
	durationIdx int
	accessIdx   int
	useReferral bool
	quote       *pricing.Quote
	err         error
	chosen      bool
}

func newCalcModel(calc *pricing.Calculator, credits int) calcModel {
	m := calcModel{calc: calc, credits: credits}
	m.requote()
	return m
}

func (m calcModel) selection() pricing.Selection {
	return pricing.Selection{
		Type:     pricing.MembershipTypes[m.typeIdx],
		Duration: pricing.Durations[m.durationIdx],
		Access:   pricing.AccessTimes[m.accessIdx],
	}
}

func (m *calcModel) requote() {
	m.quote, m.err = m.calc.Quote(pricing.QuoteRequest{
		Selection:       m.selection(),
		ReferralCredits: m.credits,
		UseReferral:     m.useReferral,
	})
}

// Init implements tea.Model
func (m calcModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m calcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "enter":
		if m.err == nil {
			m.chosen = true
			return m, tea.Quit
		}
	case "up", "k", "shift+tab":
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	case "down", "j", "tab":
		m.focus = (m.focus + 1) % fieldCount
	case "left", "h":
		m.step(-1)
	case "right", "l", " ":
		m.step(1)
	case "r":
		m.useReferral = !m.useReferral
		m.requote()
	}
	return m, nil
}

func cycle(i, delta, n int) int {
	return (i + delta + n) % n
}

func (m *calcModel) step(delta int) {
	switch m.focus {
	case fieldType:
		m.typeIdx = cycle(m.typeIdx, delta, len(pricing.MembershipTypes))
	case fieldDuration:
		m.durationIdx = cycle(m.durationIdx, delta, len(pricing.Durations))
	case fieldAccess:
		m.accessIdx = cycle(m.accessIdx, delta, len(pricing.AccessTimes))
	case fieldReferral:
		m.useReferral = !m.useReferral
	}
	m.requote()
}

func (m calcModel) row(field int, label string, options []string, selected int) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if i == selected {
			parts[i] = calcSelectedStyle.Render(o)
		} else {
			parts[i] = calcOptionStyle.Render(o)
		}
	}
	cursor := "  "
	if m.focus == field {
		cursor = calcFocusStyle.Render("› ")
	}
	return cursor + calcLabelStyle.Render(label) + strings.Join(parts, "  ")
}

// View implements tea.Model
func (m calcModel) View() string {
	types := make([]string, len(pricing.MembershipTypes))
	for i, t := range pricing.MembershipTypes {
		types[i] = t.Label()
	}
	durations := make([]string, len(pricing.Durations))
	for i, d := range pricing.Durations {
		durations[i] = d.Label()
	}
	access := make([]string, len(pricing.AccessTimes))
	for i, a := range pricing.AccessTimes {
		access[i] = a.Label()
	}
	referral := 0
	if m.useReferral {
		referral = 1
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		m.row(fieldType, "Membership", types, m.typeIdx),
		m.row(fieldDuration, "Duration", durations, m.durationIdx),
		m.row(fieldAccess, "Access", access, m.accessIdx),
		m.row(fieldReferral, "Referral", []string{"off", fmt.Sprintf("on (%d credits)", m.credits)}, referral),
	)

	var summary string
	switch {
	case m.err != nil:
		summary = calcErrorStyle.Render(m.err.Error())
	case m.quote != nil:
		lines := []string{fmt.Sprintf("Price      %s", formatMoney(m.quote.Price, m.quote.Currency))}
		if m.quote.Savings > 0 {
			lines = append(lines, fmt.Sprintf("You save   %s", formatMoney(m.quote.Savings, m.quote.Currency)))
		}
		if m.quote.Discount > 0 {
			lines = append(lines, fmt.Sprintf("Referral  -%s", formatMoney(m.quote.Discount, m.quote.Currency)))
		}
		lines = append(lines,
			calcTotalStyle.Render(fmt.Sprintf("Total      %s", formatMoney(m.quote.Total, m.quote.Currency))),
			fmt.Sprintf("%d guest passes · pause up to %d month(s)", m.quote.GuestPasses, m.quote.PauseMonths),
		)
		summary = strings.Join(lines, "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		calcTitleStyle.Render("Signature Fitness · Membership Calculator"),
		calcBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, form, "", summary)),
		calcHelpStyle.Render("↑/↓ field · ←/→ change · r referral · enter choose · q quit"),
	)
}
