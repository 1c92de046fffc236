package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DocItem is one row in the document list.
type DocItem struct {
	ID       string
	Name     string
	Category string
	Size     string
	Locked   bool
}

// DocList is a navigable list of household documents.
type DocList struct {
	Items  []DocItem
	cursor int

	CursorStyle    lipgloss.Style
	SelectedStyle  lipgloss.Style
	UnselectedItem lipgloss.Style
	DimStyle       lipgloss.Style
	kbd            KbdHint
}

// NewDocList creates a document list with the given styles.
func NewDocList(cursorStyle, selectedStyle, unselectedStyle, dimStyle lipgloss.Style, kbdKeyStyle, kbdDescStyle lipgloss.Style) DocList {
	kbd := NewKbdHint(kbdKeyStyle, kbdDescStyle)
	kbd.Bindings = DocumentHints()
	return DocList{
		CursorStyle:    cursorStyle,
		SelectedStyle:  selectedStyle,
		UnselectedItem: unselectedStyle,
		DimStyle:       dimStyle,
		kbd:            kbd,
	}
}

// SetItems replaces the list contents, clamping the cursor.
func (d *DocList) SetItems(items []DocItem) {
	d.Items = items
	if d.cursor >= len(items) {
		d.cursor = len(items) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

// Update handles navigation keys.
func (d DocList) Update(msg tea.Msg) (DocList, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.Items)-1 {
				d.cursor++
			}
		}
	}
	return d, nil
}

// Selected returns the item under the cursor, or false when empty.
func (d DocList) Selected() (DocItem, bool) {
	if len(d.Items) == 0 {
		return DocItem{}, false
	}
	return d.Items[d.cursor], true
}

// Cursor returns the cursor position.
func (d DocList) Cursor() int { return d.cursor }

// View renders the list rows and hint bar.
func (d DocList) View(width int) string {
	if len(d.Items) == 0 {
		return "  " + d.DimStyle.Render("No documents yet.") + "\n\n" + d.kbd.View()
	}

	var out string
	for i, item := range d.Items {
		cursor := "  "
		style := d.UnselectedItem
		if i == d.cursor {
			cursor = d.CursorStyle.Render("▸ ")
			style = d.SelectedStyle
		}
		lock := "  "
		if item.Locked {
			lock = "🔒"
		}
		line := fmt.Sprintf("%s %s", lock, item.Name)
		if item.Category != "" {
			line += d.DimStyle.Render("  · " + item.Category)
		}
		if item.Size != "" {
			line += d.DimStyle.Render("  " + item.Size)
		}
		out += "  " + cursor + style.Render(line) + "\n"
	}
	return out + "\n" + d.kbd.View()
}
