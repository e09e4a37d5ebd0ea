package ui

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/nmpick/internal/nodemodules"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

const (
	previewReadLimit = 64 * 1024
	previewMaxLines  = 400
	previewTabWidth  = 4
)

type previewData struct {
	target       string
	label        string
	meta         string
	lines        []string
	err          string
	loading      bool
	seq          int
	scrollOffset int
}

type previewLoadedMsg struct {
	levelID string
	target  string
	seq     int
	meta    string
	lines   []string
	err     error
}

// filePreview is the rendered head of a file.
type filePreview struct {
	Meta  string
	Lines []string
}

var filePreviewFn = loadFilePreview

// ensurePreviewForLevel schedules a preview for the file under the cursor.
// Levels without regular files never show a preview.
func (m *Model) ensurePreviewForLevel(level *level) tea.Cmd {
	if level == nil {
		return nil
	}
	if !level.HasFiles() {
		m.clearPreview(level.ID)
		return nil
	}
	item, ok := level.Selected()
	if !ok || item.Parent || item.Kind != nodemodules.KindFile {
		m.clearPreview(level.ID)
		return nil
	}
	if existing, ok := m.preview[level.ID]; ok && existing.target == item.Path {
		return nil
	}
	m.previewSeq++
	seq := m.previewSeq
	m.preview[level.ID] = &previewData{
		target:  item.Path,
		label:   item.DisplayName,
		loading: true,
		seq:     seq,
	}
	fsys := m.fs
	levelID := level.ID
	target := item.Path
	return func() tea.Msg {
		preview, err := filePreviewFn(fsys, target)
		return previewLoadedMsg{
			levelID: levelID,
			target:  target,
			seq:     seq,
			meta:    preview.Meta,
			lines:   preview.Lines,
			err:     err,
		}
	}
}

func (m *Model) ensurePreviewForCurrentLevel() tea.Cmd {
	return m.ensurePreviewForLevel(m.currentLevel())
}

func (m *Model) clearPreview(levelID string) {
	if levelID == "" || m.preview == nil {
		return
	}
	delete(m.preview, levelID)
}

func (m *Model) activePreview() *previewData {
	current := m.currentLevel()
	if current == nil || m.preview == nil {
		return nil
	}
	return m.preview[current.ID]
}

func (m *Model) handlePreviewLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(previewLoadedMsg)
	if !ok {
		return nil
	}
	data, ok := m.preview[update.levelID]
	if !ok {
		return nil
	}
	if data.seq != update.seq || data.target != update.target {
		return nil
	}
	data.loading = false
	data.scrollOffset = 0
	data.meta = update.meta
	if update.err != nil {
		data.err = update.err.Error()
		data.lines = nil
	} else {
		data.err = ""
		data.lines = update.lines
	}
	m.syncViewport(m.currentLevel())
	return nil
}

// loadFilePreview reads the head of path. Binary content is summarised by
// its detected media type instead of being dumped.
func loadFilePreview(fsys afero.Fs, path string) (filePreview, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return filePreview{}, err
	}
	f, err := fsys.Open(path)
	if err != nil {
		return filePreview{}, err
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, previewReadLimit))
	if err != nil {
		return filePreview{}, err
	}
	mtype := mimetype.Detect(buf)
	meta := fmt.Sprintf("%s · %s", humanize.Bytes(uint64(info.Size())), mtype.String())
	if !isText(mtype) {
		return filePreview{Meta: meta, Lines: []string{fmt.Sprintf("(binary content, %s)", mtype.Extension())}}, nil
	}
	lines := splitPreviewLines(buf, info.Size() > previewReadLimit)
	return filePreview{Meta: meta, Lines: lines}, nil
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func splitPreviewLines(buf []byte, truncated bool) []string {
	tabs := strings.Repeat(" ", previewTabWidth)
	lines := make([]string, 0, 64)
	scanner := bufio.NewScanner(bytes.NewReader(buf))
	scanner.Buffer(make([]byte, 0, 4096), previewReadLimit)
	for scanner.Scan() {
		if len(lines) == previewMaxLines {
			truncated = true
			break
		}
		line := strings.ReplaceAll(scanner.Text(), "\t", tabs)
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	if truncated {
		lines = append(lines, "…")
	}
	if len(lines) == 0 {
		return []string{"(empty file)"}
	}
	return lines
}
