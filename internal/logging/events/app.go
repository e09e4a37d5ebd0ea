package events

import (
	"github.com/atomicstack/nmpick/internal/logging"
	"github.com/atomicstack/nmpick/internal/nodemodules"
)

type AppTracer struct{}

type ResolveTracer struct{}

var (
	App     = AppTracer{}
	Resolve = ResolveTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Mode(mode string) {
	logging.Trace("app.mode", map[string]interface{}{"mode": mode})
}

func (AppTracer) Exit(selected string, ok bool) {
	logging.Trace("app.exit", map[string]interface{}{"selected": selected, "ok": ok})
}

func (ResolveTracer) Start(root, activeFile string) {
	logging.Trace("resolve.start", map[string]interface{}{"root": root, "active": activeFile})
}

func (ResolveTracer) Done(project string) {
	logging.Trace("resolve.done", map[string]interface{}{"project": project})
}

func (ResolveTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("resolve.error", map[string]interface{}{
		"kind":  nodemodules.KindOf(err).String(),
		"error": err.Error(),
	})
}
