package nodemodules

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures raised while resolving or browsing a
// dependency tree.
type ErrorKind int

const (
	UnknownError ErrorKind = iota
	NoWorkspace
	NoActiveFile
	UnsupportedLayout
	UnexpectedFS
	NavigationRead
)

func (k ErrorKind) String() string {
	switch k {
	case NoWorkspace:
		return "no workspace"
	case NoActiveFile:
		return "no active file"
	case UnsupportedLayout:
		return "unsupported layout"
	case UnexpectedFS:
		return "unexpected filesystem error"
	case NavigationRead:
		return "navigation read error"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is comparisons. Any *Error with the same kind matches.
var (
	ErrNoWorkspace       = &Error{Kind: NoWorkspace, msg: "no workspace is open"}
	ErrNoActiveFile      = &Error{Kind: NoActiveFile, msg: "no active file to infer a sub-project from"}
	ErrUnsupportedLayout = &Error{Kind: UnsupportedLayout, msg: "only one level of monorepo nesting is supported"}
	ErrUnexpectedFS      = &Error{Kind: UnexpectedFS, msg: "unexpected filesystem error"}
	ErrNavigationRead    = &Error{Kind: NavigationRead, msg: "unable to read directory"}
)

// Error carries a kind, the path involved (if any) and the underlying cause.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
	msg  string
}

func newError(kind ErrorKind, msg, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err, msg: msg}
}

func (e *Error) Error() string {
	msg := e.msg
	if msg == "" {
		msg = e.Kind.String()
	}
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", msg, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", msg, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality so callers can match against the package sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UnknownError
}
