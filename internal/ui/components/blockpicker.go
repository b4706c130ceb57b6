package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/minqi/vocadrill/internal/ui/theme"
)

// BlockPicker builds a sentence by picking scrambled blocks in order.
// Multi-word blocks carry an underscore joiner internally; the display
// shows them with spaces.
type BlockPicker struct {
	Blocks []string
	used   []bool
	picked []int
	Focus  int
}

// NewBlockPicker creates a picker over the given scrambled blocks.
func NewBlockPicker(blocks []string) BlockPicker {
	return BlockPicker{
		Blocks: blocks,
		used:   make([]bool, len(blocks)),
	}
}

// Complete reports whether every block has been picked.
func (b BlockPicker) Complete() bool {
	return len(b.picked) == len(b.Blocks)
}

// Value returns the assembled answer: picked blocks joined by spaces,
// in pick order.
func (b BlockPicker) Value() string {
	parts := make([]string, len(b.picked))
	for i, idx := range b.picked {
		parts[i] = b.Blocks[idx]
	}
	return strings.Join(parts, " ")
}

// Reset clears all picks, keeping the block order.
func (b *BlockPicker) Reset() {
	b.used = make([]bool, len(b.Blocks))
	b.picked = nil
	b.Focus = 0
}

// SetBlocks replaces the blocks (used after a reshuffle) and clears
// picks.
func (b *BlockPicker) SetBlocks(blocks []string) {
	b.Blocks = blocks
	b.Reset()
}

func (b *BlockPicker) moveFocus(delta int) {
	if len(b.Blocks) == 0 {
		return
	}
	i := b.Focus
	for step := 0; step < len(b.Blocks); step++ {
		i = (i + delta + len(b.Blocks)) % len(b.Blocks)
		if !b.used[i] {
			b.Focus = i
			return
		}
	}
}

func (b *BlockPicker) pickFocused() {
	if b.Focus < 0 || b.Focus >= len(b.Blocks) || b.used[b.Focus] {
		return
	}
	b.used[b.Focus] = true
	b.picked = append(b.picked, b.Focus)
	if !b.Complete() {
		b.moveFocus(1)
	}
}

func (b *BlockPicker) unpickLast() {
	if len(b.picked) == 0 {
		return
	}
	last := b.picked[len(b.picked)-1]
	b.picked = b.picked[:len(b.picked)-1]
	b.used[last] = false
	b.Focus = last
}

// Update handles keyboard input: arrows move between unused blocks,
// enter/space picks, backspace un-picks the most recent block.
func (b BlockPicker) Update(msg tea.Msg) (BlockPicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	switch kmsg.String() {
	case "left", "h", "up", "k":
		b.moveFocus(-1)
	case "right", "l", "down", "j", "tab":
		b.moveFocus(1)
	case "enter", "space", " ":
		b.pickFocused()
	case "backspace":
		b.unpickLast()
	}
	return b, nil
}

func displayBlock(block string) string {
	return strings.ReplaceAll(block, "_", " ")
}

// View renders the assembled sentence so far and the remaining blocks.
func (b BlockPicker) View(width int) string {
	var s strings.Builder

	assembled := displayBlock(b.Value())
	if assembled == "" {
		assembled = "…"
	}
	s.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("  " + assembled))
	s.WriteString("\n\n")

	var row []string
	for i, block := range b.Blocks {
		style := theme.BlockIdle
		switch {
		case b.used[i]:
			style = theme.BlockUsed
		case i == b.Focus:
			style = theme.BlockFocused
		}
		row = append(row, style.Render(displayBlock(block)))
	}
	blocks := strings.Join(row, " ")
	s.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, blocks))

	return s.String()
}
