// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#CCCCCC"} // Body text
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#696969"} // Hints, status bar
	HeadingColor     = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	CodeColor        = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"} // teal

	// Selection
	SelectionBgColor = lipgloss.AdaptiveColor{Light: "#BBD6FB", Dark: "#264F78"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"}

	// Toast borders
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	BodyStyle    = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	HeadingStyle = lipgloss.NewStyle().Foreground(HeadingColor).Bold(true)
	CodeStyle    = lipgloss.NewStyle().Foreground(CodeColor)

	SelectionStyle = lipgloss.NewStyle().Background(SelectionBgColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor).
			Padding(0, 1)

	ModifiedStyle = lipgloss.NewStyle().Foreground(ToastBorderWarnColor).Bold(true)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OverlayBorderColor).
			Padding(0, 1)

	OverlayTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor)
)

// TokenStyle returns the style a token of the given import style renders with.
func TokenStyle(style string) lipgloss.Style {
	switch style {
	case "heading":
		return HeadingStyle
	case "code":
		return CodeStyle
	default:
		return BodyStyle
	}
}

// CursorStyle returns the style of the cursor cell in colour, which is a
// hex value or a lipgloss colour name.
func CursorStyle(colour string) lipgloss.Style {
	return lipgloss.NewStyle().
		Reverse(true).
		Foreground(lipgloss.Color(colour))
}
