package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"urlclient/internal/dashboard"
	"urlclient/internal/domain"
	"urlclient/internal/form"
	"urlclient/internal/timefmt"
	"urlclient/internal/validation"
)

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#64B5F6"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	colorError   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E57373"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#EF6C00", Dark: "#FFB74D"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"}
)

// styles are bound to a renderer for the output writer so that colors are
// dropped when the writer is not a terminal.
type styles struct {
	title   lipgloss.Style
	bold    lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorAccent),
		bold:    r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
		success: r.NewStyle().Foreground(colorSuccess),
		failure: r.NewStyle().Foreground(colorError),
		warning: r.NewStyle().Foreground(colorWarning),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		border:  r.NewStyle().Foreground(colorMuted),
	}
}

func (s styles) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

func (s styles) shortened(w io.Writer, urls []domain.ShortenedURL) {
	fmt.Fprintln(w, s.title.Render("Shortened URLs"))
	for _, u := range urls {
		fmt.Fprintf(w, "  %s %s\n", s.success.Render("✓"), s.bold.Render(u.ShortURL))
		fmt.Fprintf(w, "    %s %s\n", s.muted.Render("original:"), u.OriginalURL)
		fmt.Fprintf(w, "    %s %s\n", s.muted.Render("expires: "), timefmt.FormatDateTime(u.ExpiryDate))
	}
}

func (s styles) failures(w io.Writer, failures []form.Failure) {
	for _, f := range failures {
		fmt.Fprintf(w, "  %s %s: %s\n", s.failure.Render("✗"), f.OriginalURL, f.Message)
	}
}

func (s styles) batchErrors(w io.Writer, drafts []domain.SubmissionDraft, err *validation.BatchValidationError) {
	for _, ie := range err.Errors {
		label := fmt.Sprintf("URL %d", ie.Index+1)
		if ie.Index < len(drafts) && drafts[ie.Index].OriginalURL != "" {
			label += " (" + drafts[ie.Index].OriginalURL + ")"
		}
		fmt.Fprintln(w, s.failure.Render(label))
		s.fieldErrors(w, ie.Err)
	}
}

func (s styles) fieldErrors(w io.Writer, err *validation.DraftError) {
	for _, fe := range err.Errors {
		fmt.Fprintf(w, "  %s %s: %s\n", s.failure.Render("✗"), fe.Field, fe.Message)
	}
}

func (s styles) dashboard(w io.Writer, view dashboard.View, now time.Time) {
	fmt.Fprintln(w, s.title.Render("URL Statistics"))
	if view.Banner != "" {
		fmt.Fprintln(w, s.failure.Render(view.Banner))
		return
	}
	if len(view.Cards) == 0 {
		fmt.Fprintln(w, s.muted.Render("No shortened URLs yet."))
		return
	}

	rows := make([][]string, 0, len(view.Cards))
	for _, c := range view.Cards {
		status := s.success.Render("Active")
		if c.Expired {
			status = s.warning.Render("Expired")
		}
		rows = append(rows, []string{
			c.URL.ShortCode,
			c.URL.OriginalURL,
			strconv.FormatInt(c.URL.ClickCount, 10),
			timefmt.RelativeTime(c.URL.CreatedAt, now),
			timefmt.FormatDateTime(c.URL.ExpiryDate),
			status,
		})
	}
	fmt.Fprintln(w, s.table([]string{"Code", "Original URL", "Clicks", "Created", "Expires", "Status"}, rows))
	s.summary(w, view.Summary)
}

func (s styles) summary(w io.Writer, sum dashboard.Summary) {
	fmt.Fprintf(w, "%s %d   %s %d   %s %d\n",
		s.muted.Render("Total URLs:"), sum.TotalURLs,
		s.muted.Render("Total Clicks:"), sum.TotalClicks,
		s.muted.Render("Active URLs:"), sum.ActiveURLs)
}

func (s styles) statistics(w io.Writer, stats domain.URLStatistics, now time.Time) {
	u := stats.ShortenedURL
	fmt.Fprintln(w, s.title.Render(u.ShortURL))
	fmt.Fprintf(w, "%s %s\n", s.muted.Render("Original:"), u.OriginalURL)
	fmt.Fprintf(w, "%s %s\n", s.muted.Render("Created: "), timefmt.FormatDateTime(u.CreatedAt))
	fmt.Fprintf(w, "%s %s\n", s.muted.Render("Expires: "), timefmt.FormatDateTime(u.ExpiryDate))
	if u.ExpiredAt(now) {
		fmt.Fprintln(w, s.warning.Render("This URL has expired"))
	}
	fmt.Fprintf(w, "%s %d\n", s.muted.Render("Clicks:  "), u.ClickCount)

	if len(stats.ClickDetails) == 0 {
		fmt.Fprintln(w, s.muted.Render("No clicks recorded yet."))
		return
	}
	rows := make([][]string, 0, len(stats.ClickDetails))
	for _, d := range stats.ClickDetails {
		rows = append(rows, []string{
			timefmt.FormatDateTime(d.Timestamp),
			orDash(d.Source),
			orDash(d.Location),
			orDash(d.UserAgent),
		})
	}
	fmt.Fprintln(w, s.table([]string{"Time", "Source", "Location", "User Agent"}, rows))
}

func (s styles) logs(w io.Writer, entries []domain.LogEntry, filter string) {
	title := "Application Logs"
	if filter != "" {
		title += " (" + filter + ")"
	}
	fmt.Fprintln(w, s.title.Render(title))
	if len(entries) == 0 {
		fmt.Fprintln(w, s.muted.Render("No log entries."))
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp.Format(time.TimeOnly),
			s.level(e.Level),
			e.Component + "." + e.Method,
			e.Message,
		})
	}
	fmt.Fprintln(w, s.table([]string{"Time", "Level", "Source", "Message"}, rows))
}

func (s styles) level(l domain.LogLevel) string {
	switch l {
	case domain.LevelError:
		return s.failure.Render(string(l))
	case domain.LevelWarn:
		return s.warning.Render(string(l))
	case domain.LevelDebug:
		return s.muted.Render(string(l))
	default:
		return string(l)
	}
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
