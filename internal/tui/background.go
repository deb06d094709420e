package tui

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// defaultFrames is the bundled animation asset. A config path can replace it
// with any file of the same format: text frames separated by "---" lines.
//
//go:embed assets/background.txt
var defaultFrames string

// Background is the animated backdrop behind the conversation: a cycle of
// text frames, or a solid color fill when no valid frames are available.
type Background struct {
	frames []string
}

// LoadBackground builds the backdrop. An empty path selects the bundled
// asset; a path that cannot be read or parsed degrades to the solid-color
// fill rather than failing the shell.
func LoadBackground(path string) Background {
	data := defaultFrames
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Background{}
		}
		data = string(raw)
	}
	return Background{frames: ParseFrames(data)}
}

// ParseFrames splits asset data into animation frames. Frames are separated
// by lines consisting solely of "---"; blank frames are dropped.
func ParseFrames(data string) []string {
	var frames []string
	for _, chunk := range strings.Split(data, "\n---\n") {
		chunk = strings.Trim(chunk, "\n")
		chunk = strings.TrimPrefix(chunk, "---\n")
		chunk = strings.TrimSuffix(chunk, "\n---")
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		frames = append(frames, chunk)
	}
	return frames
}

// Animated reports whether the backdrop has more than one frame and needs
// tick-driven redraws.
func (b Background) Animated() bool { return len(b.frames) > 1 }

// Render draws frame i into a width×height block. With no frames it renders
// the solid fallback color instead.
func (b Background) Render(i, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(b.frames) == 0 {
		return fillStyle.Width(width).Height(height).Render("")
	}
	frame := starStyle.Render(b.frames[i%len(b.frames)])
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, frame)
}
