package liner

import "context"

// Prompter is a test double for the liner state.
type Prompter struct {
	PromptFn func(ctx context.Context, prompt string) (string, error)
	History  []string
	Closed   bool
	ctx      context.Context
}

func (p *Prompter) Prompt(prompt string) (string, error) {
	return p.PromptFn(p.ctx, prompt)
}

func (p *Prompter) AppendHistory(item string) {
	p.History = append(p.History, item)
}

func (p *Prompter) Close() error {
	p.Closed = true
	return nil
}

// NewReaderWith returns a Reader backed by p. ctx is passed to PromptFn so
// tests can unblock it.
func NewReaderWith(ctx context.Context, p *Prompter) *Reader {
	p.ctx = ctx
	return &Reader{state: p}
}
