// Package console renders panels, tables and status messages for the terminal.
// Colors are chosen per output stream, so redirected output stays plain text.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Palette
var (
	Cyan    = lipgloss.Color("#00BCD4")
	Blue    = lipgloss.Color("#2196F3")
	Magenta = lipgloss.Color("#E040FB")
	Green   = lipgloss.Color("#8BC34A")
	White   = lipgloss.Color("#F2F2F2")
	Red     = lipgloss.Color("#E53935")
	Yellow  = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles bound to one renderer.
type Styles struct {
	Label      lipgloss.Style
	PanelTitle lipgloss.Style
	Panel      lipgloss.Style
	TableTitle lipgloss.Style
	Header     lipgloss.Style
	Border     lipgloss.Style
	Columns    []lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
}

// NewStyles creates the styles for the given renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	cell := r.NewStyle().Padding(0, 1)

	return Styles{
		Label: r.NewStyle().
			Foreground(Cyan).
			Bold(true),

		PanelTitle: r.NewStyle().
			Foreground(Blue).
			Bold(true),

		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Padding(0, 1),

		TableTitle: r.NewStyle().
			Italic(true),

		Header: cell.
			Foreground(Magenta).
			Bold(true),

		Border: r.NewStyle().
			Foreground(Blue),

		Columns: []lipgloss.Style{
			cell.Foreground(Cyan),
			cell.Foreground(Green),
			cell.Foreground(White),
		},

		Error: r.NewStyle().
			Foreground(Red).
			Bold(true),

		Warning: r.NewStyle().
			Foreground(Yellow).
			Bold(true),
	}
}

// Console writes styled text to a single stream.
type Console struct {
	out    io.Writer
	styles Styles
}

// New creates a Console for out, detecting its color support.
func New(out io.Writer) *Console {
	return &Console{
		out:    out,
		styles: NewStyles(lipgloss.NewRenderer(out)),
	}
}

// Styles returns the styles bound to this console.
func (c *Console) Styles() Styles {
	return c.styles
}

// Println writes s followed by a newline.
func (c *Console) Println(s string) {
	fmt.Fprintln(c.out, s)
}

// Field renders "<label>: <value>" with a styled label.
func (c *Console) Field(label, value string) string {
	return c.styles.Label.Render(label+":") + " " + value
}

// Panel renders lines inside a rounded border under a title.
func (c *Console) Panel(title string, lines []string) string {
	body := c.styles.Panel.Render(strings.Join(lines, "\n"))
	if title == "" {
		return body
	}
	return c.styles.PanelTitle.Render(title) + "\n" + body
}

// Table renders rows under headers. Columns past the styled ones use the last column style.
func (c *Console) Table(title string, headers []string, rows [][]string) string {
	columns := c.styles.Columns
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.styles.Header
			}
			if col < len(columns) {
				return columns[col]
			}
			return columns[len(columns)-1]
		})

	if title == "" {
		return t.Render()
	}
	return lipgloss.JoinVertical(lipgloss.Center, c.styles.TableTitle.Render(title), t.Render())
}

// Error writes "Error: <err>" with a bold red label.
func (c *Console) Error(err error) {
	c.Println(c.styles.Error.Render("Error:") + " " + err.Error())
}

// Warn writes msg in bold yellow.
func (c *Console) Warn(msg string) {
	c.Println(c.styles.Warning.Render(msg))
}
