package events

import "github.com/atomicstack/nmpick/internal/logging"

type NavTracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

var (
	Nav    = NavTracer{}
	Filter = FilterTracer{}
	Action = ActionTracer{}
)

func (NavTracer) Enter(levelID, path, label, filter string) {
	logging.Trace("nav.enter", map[string]interface{}{
		"level":  levelID,
		"path":   path,
		"label":  label,
		"filter": filter,
	})
}

func (NavTracer) Loaded(dir string, count int) {
	logging.Trace("nav.loaded", map[string]interface{}{"dir": dir, "count": count})
}

func (NavTracer) Back(from, to string) {
	logging.Trace("nav.back", map[string]interface{}{"from": from, "to": to})
}

func (NavTracer) Cursor(levelID string, cursor int) {
	logging.Trace("nav.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (NavTracer) Cancel(levelID string) {
	logging.Trace("nav.cancel", map[string]interface{}{"level": levelID})
}

func (NavTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("nav.error", map[string]interface{}{"path": path, "error": err.Error()})
}

func (ActionTracer) Open(path string, command []string) {
	logging.Trace("action.open", map[string]interface{}{"path": path, "command": command})
}

func (ActionTracer) Reveal(path string, copied bool) {
	logging.Trace("action.reveal", map[string]interface{}{"path": path, "copied": copied})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Cursor(levelID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (FilterTracer) CursorWord(levelID string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (FilterTracer) Append(levelID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Backspace(levelID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": levelID, "filter": filter})
}
