package components

// innerWidth is the text width left inside a bordered box with horizontal
// padding paddingX.
func innerWidth(outerWidth, paddingX int) int {
	w := outerWidth - 2 - paddingX*2
	if w < 10 {
		w = 10
	}
	return w
}

// TruncateString truncates text with ellipsis to fit width
func TruncateString(text string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= width {
		return text
	}

	if width <= 3 {
		return string(runes[:width])
	}

	return string(runes[:width-3]) + "..."
}
