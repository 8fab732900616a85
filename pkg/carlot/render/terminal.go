package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	pink   = lipgloss.Color("205")
	cyan   = lipgloss.Color("86")
	green  = lipgloss.Color("82")
	yellow = lipgloss.Color("220")
	grey   = lipgloss.Color("245")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(pink)

	metaStyle = lipgloss.NewStyle().
			Foreground(cyan)

	priceStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(yellow)

	mutedStyle = lipgloss.NewStyle().
			Foreground(grey).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1).
			Width(60)
)

// WriteListing prints l as bordered cards, or an empty-state line.
func WriteListing(w io.Writer, l Listing) {
	fmt.Fprintln(w, metaStyle.Render(l.CountLabel))
	if l.Empty {
		fmt.Fprintln(w, mutedStyle.Render("No vehicles match your filters."))
		return
	}
	for _, c := range l.Cards {
		fmt.Fprintln(w, cardStyle.Render(cardText(c)))
	}
}

func cardText(c Card) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("%d", c.Year)))
	b.WriteString("  ")
	b.WriteString(priceStyle.Render(c.Price))
	b.WriteString("\n")
	b.WriteString(c.Description)
	b.WriteString("\n")
	b.WriteString(tagStyle.Render(string(c.BodyStyle)))
	b.WriteString("  ")
	b.WriteString(tagStyle.Render(c.Mileage))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("id " + c.CarID))
	return b.String()
}

// WriteDetail prints a single car.
func WriteDetail(w io.Writer, d Detail) {
	fmt.Fprintln(w, titleStyle.Render(d.Title))
	fmt.Fprintf(w, "%s %s\n", metaStyle.Render("Brand:  "), d.Brand)
	fmt.Fprintf(w, "%s %s\n", metaStyle.Render("Model:  "), d.Model)
	fmt.Fprintf(w, "%s %d\n", metaStyle.Render("Year:   "), d.Year)
	fmt.Fprintf(w, "%s %s\n", metaStyle.Render("Price:  "), priceStyle.Render(d.Price))
	fmt.Fprintf(w, "%s %s\n", metaStyle.Render("Mileage:"), d.Mileage)
	fmt.Fprintf(w, "%s %s\n", metaStyle.Render("Body:   "), d.BodyStyle)
	fmt.Fprintf(w, "%s %s\n", metaStyle.Render("Image:  "), d.ImageURL)
	fmt.Fprintln(w, d.Description)
}

// WriteOptions prints select options on one line, marking the selected one.
func WriteOptions(w io.Writer, label string, opts []Option) {
	parts := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.Selected {
			parts = append(parts, priceStyle.Render("["+o.Value+"]"))
			continue
		}
		parts = append(parts, o.Value)
	}
	fmt.Fprintf(w, "%s %s\n", metaStyle.Render(label), strings.Join(parts, " "))
}
