package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkuznetsov/finsight/internal/core/usecase"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("FinSight Console"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.view {
	case viewDocuments:
		b.WriteString(m.renderDocuments())
	case viewDetail:
		b.WriteString(m.renderDetail())
	case viewAlerts:
		b.WriteString(m.renderAlerts())
	case viewSearch:
		b.WriteString(m.renderSearch())
	case viewAudit:
		b.WriteString(m.renderAudit())
	}

	b.WriteString("\n")
	b.WriteString(m.renderPrompt())
	b.WriteString(m.renderNotice())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []struct {
		v    view
		name string
	}{
		{viewDocuments, "1 Documents"},
		{viewAlerts, "2 Alerts"},
		{viewSearch, "3 Search"},
		{viewAudit, "4 Audit"},
	}

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		active := m.view == tab.v || (tab.v == viewDocuments && m.view == viewDetail)
		if active {
			parts = append(parts, tabActiveStyle.Render(tab.name))
		} else {
			parts = append(parts, tabStyle.Render(tab.name))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderDocuments() string {
	var b strings.Builder

	filter := m.docs.Filter()
	b.WriteString(headerStyle.Render(fmt.Sprintf(
		"%-28s %-12s %-18s %6s  %-19s",
		"FILE", "STATUS", "TYPE", "PAGES", "UPDATED")))
	b.WriteString("\n")

	if err := m.docs.Err(); err != nil {
		b.WriteString(errorStyle.Render(errorText(err)))
		b.WriteString("\n")
	}

	items := m.docs.Items()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("no documents"))
		b.WriteString("\n")
	}
	for i, doc := range items {
		line := fmt.Sprintf("%-28s %-12s %-18s %6d  %-19s",
			truncate(doc.OriginalFilename, 28),
			doc.Status,
			doc.DocumentType,
			doc.PageCount,
			formatTime(doc.UpdatedAt))
		if i == m.docCursor {
			b.WriteString(cursorStyle.Render(line))
		} else {
			b.WriteString(statusStyle(string(doc.Status)).Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"page %d/%d  total %d  status=%s type=%s",
		m.docs.Page(), m.docs.MaxPage(), m.docs.Total(),
		orAll(string(filter.Status)), orAll(string(filter.Type)))))
	return b.String()
}

func (m Model) renderDetail() string {
	if m.detail == nil {
		return mutedStyle.Render("nothing observed")
	}

	var b strings.Builder
	if err := m.detail.Err; err != nil {
		b.WriteString(errorStyle.Render(errorText(err)))
		b.WriteString("\n")
	}
	snapshot := m.detail.Snapshot
	if snapshot == nil {
		b.WriteString(mutedStyle.Render("loading " + m.detail.ID() + "..."))
		return b.String()
	}

	var info strings.Builder
	fmt.Fprintf(&info, "%s\n", snapshot.OriginalFilename)
	fmt.Fprintf(&info, "status: %s", statusStyle(string(snapshot.Status)).Render(string(snapshot.Status)))
	if m.poller.State(snapshot.ID) == usecase.PollArmed {
		info.WriteString(mutedStyle.Render("  (watching)"))
	}
	info.WriteString("\n")
	fmt.Fprintf(&info, "type: %s  pages: %d  size: %d bytes  retries: %d\n",
		snapshot.DocumentType, snapshot.PageCount, snapshot.FileSize, snapshot.RetryCount)
	if snapshot.ErrorMessage != "" {
		info.WriteString(errorStyle.Render("error: " + snapshot.ErrorMessage))
		info.WriteString("\n")
	}
	b.WriteString(boxStyle.Render(strings.TrimRight(info.String(), "\n")))
	b.WriteString("\n\n")

	if len(snapshot.Extractions) > 0 {
		b.WriteString(headerStyle.Render("Extractions"))
		b.WriteString("\n")
		for _, e := range snapshot.Extractions {
			fmt.Fprintf(&b, "  %s %s  %s %.2f (confidence %.2f)\n",
				e.VendorName, e.InvoiceNumber, e.Currency, e.TotalAmount, e.ConfidenceScore)
		}
		b.WriteString("\n")
	}

	if len(snapshot.Validations) > 0 {
		b.WriteString(headerStyle.Render("Validations"))
		b.WriteString("\n")
		for _, v := range snapshot.Validations {
			mark := noticeStyle.Render("PASS")
			if !v.IsValid {
				mark = errorStyle.Render("FAIL")
			}
			fmt.Fprintf(&b, "  %s %s", mark, v.ValidationType)
			if v.ErrorMessage != "" {
				b.WriteString(mutedStyle.Render("  " + v.ErrorMessage))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(snapshot.RiskFlags) > 0 {
		b.WriteString(headerStyle.Render("Risk Flags"))
		b.WriteString("\n")
		for _, f := range snapshot.RiskFlags {
			level := riskStyle(string(f.RiskLevel)).Render(fmt.Sprintf("%-8s", f.RiskLevel))
			state := ""
			if f.IsResolved {
				state = mutedStyle.Render("  [resolved]")
			}
			fmt.Fprintf(&b, "  %s %s%s\n", level, f.Description, state)
		}
	}
	return b.String()
}

func (m Model) renderAlerts() string {
	var b strings.Builder

	filter := m.alerts.Filter()
	b.WriteString(headerStyle.Render(fmt.Sprintf(
		"%-8s %-24s %-20s %-32s %s",
		"LEVEL", "DOCUMENT", "TYPE", "DESCRIPTION", "STATE")))
	b.WriteString("\n")

	if err := m.alerts.Err(); err != nil {
		b.WriteString(errorStyle.Render(errorText(err)))
		b.WriteString("\n")
	}

	items := m.alerts.Items()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("no alerts"))
		b.WriteString("\n")
	}
	for i, alert := range items {
		state := "open"
		if alert.IsResolved {
			state = "resolved"
		}
		line := fmt.Sprintf("%-8s %-24s %-20s %-32s %s",
			alert.RiskLevel,
			truncate(alert.DocumentFilename, 24),
			truncate(alert.RiskType, 20),
			truncate(alert.Description, 32),
			state)
		if i == m.alertCursor {
			b.WriteString(cursorStyle.Render(line))
		} else {
			b.WriteString(riskStyle(string(alert.RiskLevel)).Render(line))
		}
		b.WriteString("\n")
	}

	scope := "unresolved"
	if filter.IncludeResolved {
		scope = "all"
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"page %d/%d  total %d  level=%s  showing %s",
		m.alerts.Page(), m.alerts.MaxPage(), m.alerts.Total(),
		orAll(string(filter.Level)), scope)))
	return b.String()
}

func (m Model) renderSearch() string {
	var b strings.Builder

	if m.search.Query == "" {
		b.WriteString(mutedStyle.Render("press / to enter a query"))
		b.WriteString("\n")
	} else {
		b.WriteString(headerStyle.Render("query: " + m.search.Query))
		b.WriteString("\n")
	}
	if err := m.search.Err; err != nil {
		b.WriteString(errorStyle.Render(errorText(err)))
		b.WriteString("\n")
	}

	for i, result := range m.search.Results {
		line := fmt.Sprintf("%.3f  %-24s p.%-3d %s",
			result.SimilarityScore,
			truncate(result.DocumentFilename, 24),
			result.PageNumber,
			truncate(strings.ReplaceAll(result.ChunkText, "\n", " "), 60))
		if i == m.searchCursor {
			b.WriteString(cursorStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	if m.search.Query != "" && len(m.search.Results) == 0 && m.search.Err == nil {
		b.WriteString(mutedStyle.Render("no matches"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderAudit() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf(
		"%-19s %-20s %-14s %s",
		"WHEN", "ACTION", "RESOURCE", "DESCRIPTION")))
	b.WriteString("\n")

	if err := m.audit.Err(); err != nil {
		b.WriteString(errorStyle.Render(errorText(err)))
		b.WriteString("\n")
	}

	items := m.audit.Items()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("no audit entries"))
		b.WriteString("\n")
	}
	for i, entry := range items {
		line := fmt.Sprintf("%-19s %-20s %-14s %s",
			formatTime(entry.CreatedAt),
			truncate(entry.Action, 20),
			truncate(entry.ResourceType, 14),
			truncate(entry.Description, 48))
		if i == m.auditCursor {
			b.WriteString(cursorStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"page %d/%d  total %d",
		m.audit.Page(), m.audit.MaxPage(), m.audit.Total())))
	return b.String()
}

func (m Model) renderPrompt() string {
	switch m.mode {
	case inputUploadPath:
		return promptStyle.Render("upload path> ") + m.input + "█\n"
	case inputResolveNotes:
		return promptStyle.Render("resolution notes> ") + m.input + "█\n"
	case inputSearchQuery:
		return promptStyle.Render("search> ") + m.input + "█\n"
	case inputConfirmDelete:
		return promptStyle.Render("delete "+m.pendingID+"? (y/n) ") + "\n"
	}
	return ""
}

func (m Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return errorStyle.Render(m.notice) + "\n"
	}
	return noticeStyle.Render(m.notice) + "\n"
}

func (m Model) renderHelp() string {
	var help string
	switch m.view {
	case viewDocuments:
		help = "enter detail  u upload  r retry  x delete  e export  f/t filter  n/p page  g refresh  q quit"
	case viewDetail:
		help = "esc back  g refresh  r retry  x delete  e export  q quit"
	case viewAlerts:
		help = "enter resolve  o open document  f level  a resolved  n/p page  g refresh  q quit"
	case viewSearch:
		help = "/ query  enter open document  q quit"
	case viewAudit:
		help = "n/p page  g refresh  q quit"
	}
	return mutedStyle.Render(help)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
