package ui

import "strings"

const (
	reset       = "\033[0m"
	bold        = "\033[1m"
	dim         = "\033[2m"
	sereneGreen = "\033[38;5;29m"
	oceanTeal   = "\033[38;5;30m"
	leafGreen   = "\033[38;5;35m"
	springGreen = "\033[38;5;48m"
	seafoam     = "\033[38;5;49m"
	mint        = "\033[38;5;121m"
	softGreen   = "\033[38;5;114m"
	alertRed    = "\033[38;5;203m"
	amber       = "\033[38;5;214m"
)

// Banner renders a colored seagreen wordmark with the startup hint.
func Banner() string {
	var b strings.Builder

	seagreenLetters := [][]string{
		{" ██████╗ ", "██╔════╝ ", "╚█████╗  ", " ╚═══██╗ ", "██████╔╝ ", "╚═════╝  "},
		{"███████╗", "██╔════╝", "█████╗  ", "██╔══╝  ", "███████╗", "╚══════╝"},
		{" █████╗ ", "██╔══██╗", "███████║", "██╔══██║", "██║  ██║", "╚═╝  ╚═╝"},
		{" ██████╗ ", "██╔════╝ ", "██║  ███╗", "██║   ██║", "╚██████╔╝", " ╚═════╝ "},
		{"██████╗ ", "██╔══██╗", "██████╔╝", "██╔══██╗", "██║  ██║", "╚═╝  ╚═╝"},
		{"███████╗", "██╔════╝", "█████╗  ", "██╔══╝  ", "███████╗", "╚══════╝"},
		{"███████╗", "██╔════╝", "█████╗  ", "██╔══╝  ", "███████╗", "╚══════╝"},
		{"███╗   ██╗", "████╗  ██║", "██╔██╗ ██║", "██║╚██╗██║", "██║ ╚████║", "╚═╝  ╚═══╝"},
	}
	seagreenGradient := []string{sereneGreen, oceanTeal, leafGreen, springGreen, seafoam, mint, softGreen, leafGreen}
	seagreenRows := make([]string, len(seagreenLetters[0]))
	for i, letter := range seagreenLetters {
		color := seagreenGradient[i%len(seagreenGradient)]
		for row := 0; row < len(letter); row++ {
			seagreenRows[row] += color + letter[row] + " "
		}
	}
	for _, line := range seagreenRows {
		b.WriteString(bold + line + reset + "\n")
	}

	b.WriteString("\n")
	b.WriteString(bold + seafoam + "seagreen" + reset + "  •  process efficiency monitor\n")
	b.WriteString(dim + "by Serene Interactive" + reset + "\n\n")
	b.WriteString(dim + "Type /help for commands" + reset + "\n\n")

	return b.String()
}
