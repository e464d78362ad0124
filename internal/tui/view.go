package tui

import (
	"fmt"
	"strings"

	"github.com/scbirs/order-explorer/internal/domain"
	"github.com/scbirs/order-explorer/internal/fetch"
)

const visibleOrders = 10

func (m Model) View() string {
	var b strings.Builder

	title := "Order Explorer"
	if m.st.Dirty() {
		title += " *"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(searchBarStyle.Render(m.search.View()))
		b.WriteString("\n\n")
	} else if m.filters.Has(domain.FilterSearch) {
		b.WriteString(mutedStyle.Render("search: "+m.search.Value()) + "\n\n")
	}

	if len(m.view) == 0 {
		b.WriteString(mutedStyle.Render("no orders match"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderOrders())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderOrders() string {
	var b strings.Builder

	// Window the list around the cursor so long datasets stay usable.
	start := 0
	if m.cursor >= visibleOrders {
		start = m.cursor - visibleOrders + 1
	}
	end := start + visibleOrders
	if end > len(m.view) {
		end = len(m.view)
	}

	for i := start; i < end; i++ {
		o := m.view[i]
		line := fmt.Sprintf("#%d  %-12s %-24s %s", o.ID, o.Status, o.BuyerName(), o.Total)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(m.renderItems(o))
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d/%d orders", len(m.view), len(m.st.Orders))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderItems(o domain.Order) string {
	var b strings.Builder
	for i, li := range o.LineItems {
		marker := "    "
		if i == m.itemCursor {
			marker = "  > "
		}
		a := m.st.AnnotationFor(li.ID)
		line := fmt.Sprintf("%s%s %dx %s", marker, renderFlags(a), li.Quantity, li.Name)
		if li.SKU != "" {
			line += mutedStyle.Render(" [" + li.SKU + "]")
		}
		if i == m.itemCursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	if o.Note != "" {
		b.WriteString(mutedStyle.Render("    note: "+o.Note) + "\n")
	}
	return b.String()
}

func renderFlags(a domain.Annotation) string {
	flag := func(on bool, letter string) string {
		if on {
			return flagOnStyle.Render(letter)
		}
		return flagOffStyle.Render("-")
	}
	return flag(a.InStock, "S") + flag(a.Paid, "P") + flag(a.Done, "D")
}

func (m Model) renderFooter() string {
	var b strings.Builder

	if m.fetching {
		page, total := m.runner.Progress()
		b.WriteString(statusStyle.Render("fetching "+fetch.DescribeProgress(page, total)) + "\n")
	} else if m.status != "" {
		style := statusStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}

	if active := m.activeFilterSummary(); active != "" {
		b.WriteString(mutedStyle.Render("filters: "+active) + "\n")
	}

	b.WriteString(helpStyle.Render(
		"j/k orders  h/l items  s/p/d flag item  S/P/D cycle filter  / search  r refresh  w save  q quit"))
	return b.String()
}

func (m Model) activeFilterSummary() string {
	labels := []struct {
		name  string
		label string
	}{
		{domain.FilterInStock, "in-stock"},
		{domain.FilterPaid, "paid"},
		{domain.FilterDone, "done"},
	}
	var parts []string
	for _, l := range labels {
		switch m.modes[l.name] {
		case filterWith:
			parts = append(parts, l.label)
		case filterWithout:
			parts = append(parts, "not "+l.label)
		}
	}
	return strings.Join(parts, ", ")
}
