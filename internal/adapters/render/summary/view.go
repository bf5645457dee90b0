package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/voicepizza/pv/internal/application"
	"github.com/voicepizza/pv/internal/domain"
)

type RenderOptions struct {
	ShowHistory bool
}

func renderView(view application.OrderView, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Order summary #%s", view.OrderID)),
	}

	lines = append(lines, renderSummarySection(view.Summary, s)...)

	if opts.ShowHistory {
		lines = append(lines, s.section.Render(s.title.Render("Transcript history")))
		lines = append(lines, renderHistorySection(view.History, s)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSummarySection(section application.SummarySection, s styles) []string {
	switch section.State {
	case application.LoadFailed:
		return []string{s.failure.Render("Could not fetch the order summary.")}
	case application.LoadIdle:
		return []string{s.empty.Render("Summary not loaded yet.")}
	}

	if section.Empty() {
		return []string{s.empty.Render("No items on this order yet.")}
	}

	lines := []string{
		s.header.Render(fmt.Sprintf("items: %d", len(section.Snapshot.Items))),
	}
	for _, item := range section.Snapshot.Items {
		lines = append(lines, s.section.Render(renderItem(item, s)))
	}
	lines = append(lines, s.section.Render(s.total.Render(fmt.Sprintf("Total: %.2f", section.Snapshot.TotalCost))))

	return lines
}

func renderItem(item domain.PricedLineItem, s styles) string {
	parts := []string{
		s.pizza.Render(item.PizzaName),
		s.detail.Render(fmt.Sprintf("dough: %s", item.DoughDescription)),
		s.detail.Render(fmt.Sprintf("%.2f each x %d = %.2f", item.PriceEach, item.Quantity, item.LineCost)),
	}

	if len(item.Ingredients) > 0 {
		parts = append(parts, s.ingredient.Render("ingredients: "+strings.Join(item.Ingredients, ", ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHistorySection(section application.HistorySection, s styles) []string {
	switch section.State {
	case application.LoadFailed:
		return []string{s.failure.Render("Could not fetch the transcript history.")}
	case application.LoadIdle:
		return []string{s.empty.Render("History not loaded yet.")}
	}

	if section.Empty() {
		return []string{s.empty.Render("No transcript history recorded.")}
	}

	lines := make([]string, 0, len(section.Turns))
	for i, turn := range section.Turns {
		line := s.turn.Render(fmt.Sprintf("%d. %q", i+1, turn.Content))
		meta := s.turnMeta.Render(fmt.Sprintf("   parsed: %s (updated slots: %d)", orDash(turn.Parsed), turn.UpdatedSlots))
		lines = append(lines, line, meta)
	}

	return lines
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
