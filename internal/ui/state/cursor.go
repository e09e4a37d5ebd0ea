package state

// clampCursor keeps the cursor on an existing row. An empty listing parks it
// at zero.
func (l *Level) clampCursor() {
	switch n := len(l.Items); {
	case n == 0 || l.Cursor < 0:
		l.Cursor = 0
	case l.Cursor >= n:
		l.Cursor = n - 1
	}
}

// setCursor moves the cursor to idx (clamped) and reports whether it moved.
func (l *Level) setCursor(idx int) bool {
	old := l.Cursor
	l.Cursor = idx
	l.clampCursor()
	return len(l.Items) > 0 && l.Cursor != old
}

// MoveCursorUp steps to the previous row, wrapping to the bottom.
func (l *Level) MoveCursorUp() bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	return l.setCursor((l.Cursor - 1 + n) % n)
}

// MoveCursorDown steps to the next row, wrapping to the top.
func (l *Level) MoveCursorDown() bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	return l.setCursor((l.Cursor + 1) % n)
}

// MoveCursorHome jumps to the first row.
func (l *Level) MoveCursorHome() bool {
	return l.setCursor(0)
}

// MoveCursorEnd jumps to the last row.
func (l *Level) MoveCursorEnd() bool {
	return l.setCursor(len(l.Items) - 1)
}

// MoveCursorPageUp moves one screenful towards the top without wrapping.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.setCursor(l.Cursor - l.pageSize(maxVisible))
}

// MoveCursorPageDown moves one screenful towards the bottom without wrapping.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.setCursor(l.Cursor + l.pageSize(maxVisible))
}

func (l *Level) pageSize(maxVisible int) int {
	if maxVisible <= 0 || maxVisible > len(l.Items) {
		return max(len(l.Items), 1)
	}
	return maxVisible
}

// EnsureCursorVisible scrolls the viewport the minimum amount needed to show
// the cursor row. maxVisible <= 0 means everything fits.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	l.clampCursor()
	if len(l.Items) == 0 || maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(len(l.Items)-maxVisible, 0)
	offset := min(max(l.ViewportOffset, 0), maxOffset)
	if l.Cursor < offset {
		offset = l.Cursor
	}
	if l.Cursor >= offset+maxVisible {
		offset = l.Cursor - maxVisible + 1
	}
	l.ViewportOffset = min(offset, maxOffset)
}
