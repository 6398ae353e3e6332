package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyCell is one key of the keyboard strip.
type KeyCell struct {
	Color  [3]uint8
	Symbol rune
	Label  string // printed under the key, usually a C marker
}

// RenderKey renders a single colored key
func RenderKey(cell KeyCell) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(cell.Color)))
	return style.Render(string(cell.Symbol))
}

// RenderKeyboard renders the key strip with a label line underneath.
// Labels are placed at their key's column and may span several columns.
func RenderKeyboard(cells []KeyCell) string {
	var keys strings.Builder
	labels := make([]rune, len(cells))
	for i := range labels {
		labels[i] = ' '
	}

	for i, c := range cells {
		keys.WriteString(RenderKey(c))
		for j, r := range c.Label {
			if i+j < len(labels) {
				labels[i+j] = r
			}
		}
	}

	return keys.String() + "\n" + strings.TrimRight(string(labels), " ")
}

// ProgressSymbols selects the runes for the three step states.
type ProgressSymbols struct {
	Done    rune
	Current rune
	Pending rune
}

// RenderProgress renders one cell per exercise step: ■■▶□□ 2/5
func RenderProgress(step, total int, sym ProgressSymbols, doneColor, pendingColor [3]uint8) string {
	var out strings.Builder
	for i := 0; i < total; i++ {
		switch {
		case i < step:
			out.WriteString(RenderKey(KeyCell{Color: doneColor, Symbol: sym.Done}))
		case i == step:
			out.WriteString(RenderKey(KeyCell{Color: doneColor, Symbol: sym.Current}))
		default:
			out.WriteString(RenderKey(KeyCell{Color: pendingColor, Symbol: sym.Pending}))
		}
	}
	fmt.Fprintf(&out, " %d/%d", step, total)
	return out.String()
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(color [3]uint8, name, desc string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return fmt.Sprintf("  %s %s - %s", style.Render("■"), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
