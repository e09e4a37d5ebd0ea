package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Directory             *lipgloss.Style
	Symlink               *lipgloss.Style
	Unknown               *lipgloss.Style
	Parent                *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Header                *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	PreviewTitle          *lipgloss.Style
	PreviewBody           *lipgloss.Style
	PreviewMeta           *lipgloss.Style
	PreviewError          *lipgloss.Style
}

// Palette entries are xterm-256 colour indexes.
const (
	accent    = lipgloss.Color("33")
	selection = lipgloss.Color("238")
	bright    = lipgloss.Color("255")
	text      = lipgloss.Color("249")
	muted     = lipgloss.Color("245")
	faint     = lipgloss.Color("241")
	danger    = lipgloss.Color("196")
	folder    = lipgloss.Color("75")
	link      = lipgloss.Color("176")
	prompt    = lipgloss.Color("34")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var defaultStyles = Styles{
	Loading:               ptr(fg(accent).Italic(true)),
	Item:                  ptr(fg(text)),
	ItemIndicator:         ptr(fg(selection)),
	SelectedItemIndicator: ptr(fg(accent).Background(selection)),
	SelectedItem:          ptr(fg(bright).Background(selection).Bold(true)),
	Directory:             ptr(fg(folder)),
	Symlink:               ptr(fg(link).Italic(true)),
	Unknown:               ptr(fg(lipgloss.Color("243"))),
	Parent:                ptr(fg(muted)),
	Error:                 ptr(fg(danger).Bold(true)),
	Info:                  ptr(fg(text)),
	Header:                ptr(fg(muted).Bold(true)),
	Footer:                ptr(fg(faint)),
	Filter:                ptr(fg(text)),
	FilterPrompt:          ptr(fg(prompt).Bold(true)),
	FilterPlaceholder:     ptr(fg(faint)),
	Cursor:                ptr(fg(lipgloss.Color("0")).Background(accent).Blink(true)),
	PreviewTitle:          ptr(fg(muted).Bold(true)),
	PreviewBody:           ptr(fg(lipgloss.Color("250"))),
	PreviewMeta:           ptr(fg(faint).Italic(true)),
	PreviewError:          ptr(fg(danger).Bold(true)),
}

// Default returns the shared style set.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
