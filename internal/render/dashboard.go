// Package render draws the dashboard for a terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/naka-gawa/gitview/internal/domain"
	"github.com/naka-gawa/gitview/internal/usecase"
)

const (
	dateLayout = "Jan 2, 2006"
	barWidth   = 24
)

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorDim    = lipgloss.Color("240")
)

// Dashboard writes styled views of a QueryResult and its derived statistics.
type Dashboard struct {
	w io.Writer

	title   lipgloss.Style
	handle  lipgloss.Style
	label   lipgloss.Style
	number  lipgloss.Style
	link    lipgloss.Style
	dim     lipgloss.Style
	warning lipgloss.Style
	errorS  lipgloss.Style
	bar     lipgloss.Style
	card    lipgloss.Style
}

// NewDashboard creates a Dashboard writing to w. When plain is set, no ANSI
// styling is emitted.
func NewDashboard(w io.Writer, plain bool) *Dashboard {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Dashboard{
		w:       w,
		title:   r.NewStyle().Bold(true).Foreground(colorCyan),
		handle:  r.NewStyle().Foreground(colorDim),
		label:   r.NewStyle().Foreground(colorDim),
		number:  r.NewStyle().Bold(true).Foreground(colorWhite),
		link:    r.NewStyle().Foreground(colorBlue).Underline(true),
		dim:     r.NewStyle().Foreground(colorDim),
		warning: r.NewStyle().Foreground(colorYellow),
		errorS:  r.NewStyle().Bold(true).Foreground(colorRed),
		bar:     r.NewStyle().Foreground(colorCyan),
		card:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1),
	}
}

// Result writes the view matching the active state of result.
func (d *Dashboard) Result(result domain.QueryResult) {
	switch result.State {
	case domain.StateNotStarted:
		d.println(d.title.Render("Ready to explore GitHub?"))
		d.println(d.dim.Render("Enter a GitHub username to discover their repositories and profile"))
	case domain.StateLoading:
		d.println(d.dim.Render(fmt.Sprintf("Searching for %s...", result.Username)))
	case domain.StateFailure:
		d.Error(result.Reason)
	case domain.StateSuccess:
		d.Profile(*result.Profile, usecase.Summarize(result.Repositories))
		d.Repositories(result.Repositories)
	}
}

// Profile writes the profile card and its headline numbers.
func (d *Dashboard) Profile(p domain.UserProfile, summary domain.Summary) {
	var b strings.Builder
	b.WriteString(d.title.Render(p.DisplayName()) + " " + d.handle.Render("@"+p.Login))
	if p.Bio != "" {
		b.WriteString("\n" + p.Bio)
	}
	if p.Location != "" {
		b.WriteString("\n📍 " + p.Location)
	}
	if site := p.WebsiteURL(); site != "" {
		b.WriteString("\n🌐 " + d.link.Render(site))
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Join([]string{
		d.stat("Repositories", p.PublicRepos),
		d.stat("Total Stars", summary.TotalStars),
		d.stat("Followers", p.Followers),
		d.stat("Following", p.Following),
	}, d.dim.Render("  ·  ")))
	b.WriteString("\n" + d.number.Render(strconv.FormatFloat(summary.MedianStars, 'f', -1, 64)) + " " + d.label.Render("Median Stars per Repository"))
	if len(summary.TopLanguages) > 0 {
		parts := make([]string, 0, len(summary.TopLanguages))
		for _, lc := range summary.TopLanguages {
			parts = append(parts, fmt.Sprintf("%s (%d)", lc.Language, lc.Count))
		}
		b.WriteString("\n" + d.label.Render("Top languages: ") + strings.Join(parts, ", "))
	}
	d.println(d.card.Render(b.String()))
}

// Languages writes one bar per language share.
func (d *Dashboard) Languages(shares []domain.LanguageShare) {
	d.println(d.title.Render("Languages"))
	if len(shares) == 0 {
		d.println(d.dim.Render("  No language data"))
		return
	}
	width := 0
	for _, s := range shares {
		width = max(width, len(s.Language))
	}
	for _, s := range shares {
		filled := min(int(s.Percentage/100*barWidth+0.5), barWidth)
		d.println(fmt.Sprintf("  %-*s %s %5.1f%%",
			width, s.Language,
			d.bar.Render(strings.Repeat("█", filled))+d.dim.Render(strings.Repeat("░", barWidth-filled)),
			s.Percentage))
	}
}

// Repositories writes the repository listing.
func (d *Dashboard) Repositories(repos []domain.Repository) {
	d.println(d.title.Render(fmt.Sprintf("Public Repositories (%d)", len(repos))))
	if len(repos) == 0 {
		d.println(d.dim.Render("  No public repositories found"))
		return
	}
	for _, r := range repos {
		name := d.link.Render(r.Name)
		if r.Language != "" {
			name += " " + d.label.Render("["+r.Language+"]")
		}
		d.println("  " + name)
		d.println("    " + r.DescriptionOrDefault())
		meta := fmt.Sprintf("★ %d  ⑂ %d", r.StargazersCount, r.ForksCount)
		if !r.UpdatedAt.IsZero() {
			meta += "  Updated " + r.UpdatedAt.Format(dateLayout)
		}
		d.println("    " + d.dim.Render(meta))
	}
}

// Warning writes a non-fatal problem.
func (d *Dashboard) Warning(msg string) {
	d.println(d.warning.Render("! " + msg))
}

// Error writes a failure reason.
func (d *Dashboard) Error(reason string) {
	d.println(d.errorS.Render("Error: " + reason))
}

func (d *Dashboard) stat(label string, n int) string {
	return d.number.Render(fmt.Sprint(n)) + " " + d.label.Render(label)
}

func (d *Dashboard) println(s string) {
	fmt.Fprintln(d.w, s)
}
