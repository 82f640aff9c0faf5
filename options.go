package calcpad

import "log/slog"

// EditorOption is an option used when creating an editor.
type EditorOption interface {
	editorOption(*Editor)
}

type (
	chainopt bool
	logopt   struct {
		l *slog.Logger
	}
)

// Chain sets whether a binary operator typed right after a successful
// evaluation continues from the result. By default a successful evaluation
// starts a fresh expression, and an operator on the empty editor is rejected.
func Chain(on bool) EditorOption {
	return chainopt(on)
}

func (o chainopt) editorOption(e *Editor) {
	e.chain = bool(o)
}

// Logger sets the logger that receives debug records for rejected input and
// evaluations. A nil logger discards records.
func Logger(l *slog.Logger) EditorOption {
	return logopt{l}
}

func (o logopt) editorOption(e *Editor) {
	if o.l == nil {
		e.log = discard
		return
	}
	e.log = o.l
}

var discard = slog.New(slog.DiscardHandler)
