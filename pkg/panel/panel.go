/*
Package panel wraps rendered terminal art in bordered, titled containers and
renders auxiliary key/value tables next to it.
*/
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

var (
	// Color palette
	borderColor  = lipgloss.Color("#D33682")
	headerColor  = lipgloss.Color("#2AA198")
	mutedColor   = lipgloss.Color("#626262")
	errorColor   = lipgloss.Color("#FF5F87")
	captionColor = lipgloss.Color("#859900")

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(headerColor).
			Bold(true).
			Padding(0, 1)

	categoryStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	valueStyle = lipgloss.NewStyle().
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)

// Options configures a panel
type Options struct {
	Title       string
	BorderColor lipgloss.TerminalColor // defaults to magenta
	Width       int                    // total width including the border; 0 fits the body
}

// Render draws body inside a rounded border with the title centred in the top
// edge. Body lines are never wrapped unless Width is set.
func Render(body string, opts Options) string {
	color := opts.BorderColor
	if color == nil {
		color = borderColor
	}
	border := lipgloss.RoundedBorder()
	edgeStyle := lipgloss.NewStyle().Foreground(color)

	box := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(color).
		Padding(0, 1)
	if opts.Width > 2 {
		box = box.Width(opts.Width - 2)
	}

	inner := box.Render(body)
	top := topEdge(border, edgeStyle, opts.Title, lipgloss.Width(inner))

	return lipgloss.JoinVertical(lipgloss.Left, top, inner)
}

// topEdge builds the top border line of the given total width with an
// optional centred title
func topEdge(border lipgloss.Border, style lipgloss.Style, title string, width int) string {
	span := max(width-2, 0)
	if title == "" {
		return style.Render(border.TopLeft + strings.Repeat(border.Top, span) + border.TopRight)
	}

	label := " " + title + " "
	if ansi.StringWidth(label) > span {
		label = ansi.Truncate(label, span, "…")
	}
	fill := span - ansi.StringWidth(label)
	left := fill / 2
	right := fill - left

	return style.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		titleStyle.Render(label) +
		style.Render(strings.Repeat(border.Top, right)+border.TopRight)
}

// Title formats a display name and numeric identifier as "Name (#id)"
func Title(name, id string) string {
	switch {
	case name != "" && id != "":
		return name + " (#" + id + ")"
	case id != "":
		return "#" + id
	default:
		return name
	}
}

// Error renders an inline error message shown in place of art
func Error(msg string) string {
	return errorStyle.Render(msg)
}

// Row is one Category/Value pair of an info table
type Row struct {
	Category string
	Value    string
}

// InfoTable renders rows as a two column Category/Value table under a caption.
// A width of 0 fits the content.
func InfoTable(caption string, rows []Row, width int) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Category, r.Value})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(mutedColor)).
		Headers("Category", "Value").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return categoryStyle
			default:
				return valueStyle
			}
		})
	if width > 0 {
		t = t.Width(width)
	}

	rendered := t.Render()
	if caption == "" {
		return rendered
	}
	head := lipgloss.NewStyle().
		Foreground(captionColor).
		Italic(true).
		Width(lipgloss.Width(rendered)).
		Align(lipgloss.Center).
		Render(caption)
	return lipgloss.JoinVertical(lipgloss.Left, head, rendered)
}
