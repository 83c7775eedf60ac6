package mock

import "github.com/fwojciec/coda"

// Interface compliance check.
var _ coda.Renderer = (*Renderer)(nil)

// Renderer is a test double for coda.Renderer. Every method is nil-safe so
// tests only set the hooks they assert on.
type Renderer struct {
	InputHeaderFn func()
	ReplyStartFn  func()
	TextFn        func(delta string)
	ReplyEndFn    func(reply coda.Reply)
	WarnFn        func(msg string)
	ErrorFn       func(err error)
	GoodbyeFn     func(interrupted bool)
}

// InputHeader delegates to InputHeaderFn.
func (r *Renderer) InputHeader() {
	if r.InputHeaderFn != nil {
		r.InputHeaderFn()
	}
}

// ReplyStart delegates to ReplyStartFn.
func (r *Renderer) ReplyStart() {
	if r.ReplyStartFn != nil {
		r.ReplyStartFn()
	}
}

// Text delegates to TextFn.
func (r *Renderer) Text(delta string) {
	if r.TextFn != nil {
		r.TextFn(delta)
	}
}

// ReplyEnd delegates to ReplyEndFn.
func (r *Renderer) ReplyEnd(reply coda.Reply) {
	if r.ReplyEndFn != nil {
		r.ReplyEndFn(reply)
	}
}

// Warn delegates to WarnFn.
func (r *Renderer) Warn(msg string) {
	if r.WarnFn != nil {
		r.WarnFn(msg)
	}
}

// Error delegates to ErrorFn.
func (r *Renderer) Error(err error) {
	if r.ErrorFn != nil {
		r.ErrorFn(err)
	}
}

// Goodbye delegates to GoodbyeFn.
func (r *Renderer) Goodbye(interrupted bool) {
	if r.GoodbyeFn != nil {
		r.GoodbyeFn(interrupted)
	}
}
