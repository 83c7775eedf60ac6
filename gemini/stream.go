package gemini

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/fwojciec/coda"
	"google.golang.org/genai"
)

// stream implements [coda.Stream] by wrapping the genai SDK's streaming iterator.
// One SDK response may carry several parts, so events are queued and handed
// out one per Next call.
type stream struct {
	ctx   context.Context
	pull  func() (*genai.GenerateContentResponse, error, bool)
	stop  func()
	state coda.StreamState
	done  bool // iterator exhausted
	queue []coda.Event
	text  strings.Builder
	reply coda.Reply
	err   error
}

// Interface compliance check.
var _ coda.Stream = (*stream)(nil)

func newStream(ctx context.Context, seq iter.Seq2[*genai.GenerateContentResponse, error]) *stream {
	next, stop := iter.Pull2(seq)
	return &stream{
		ctx:   ctx,
		pull:  next,
		stop:  stop,
		state: coda.StreamStateNew,
	}
}

func (s *stream) Next() (coda.Event, error) {
	switch s.state {
	case coda.StreamStateComplete:
		return nil, io.EOF
	case coda.StreamStateError:
		return nil, s.err
	case coda.StreamStateClosed:
		return nil, fmt.Errorf("gemini: %w", coda.ErrStreamClosed)
	}
	for len(s.queue) == 0 {
		if s.done {
			s.complete()
			return nil, io.EOF
		}
		if err := s.advance(); err != nil {
			return nil, err
		}
	}
	s.state = coda.StreamStateStreaming
	evt := s.queue[0]
	s.queue = s.queue[1:]
	return evt, nil
}

// advance pulls one SDK response and queues its events.
func (s *stream) advance() error {
	resp, err, ok := s.pull()
	if !ok {
		s.done = true
		return nil
	}
	if err != nil {
		return s.fail(err)
	}
	if err := s.process(resp); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *stream) process(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return nil
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		msg := string(fb.BlockReason)
		if fb.BlockReasonMessage != "" {
			msg += ": " + fb.BlockReasonMessage
		}
		return &coda.RemoteError{Err: fmt.Errorf("%w: %s", coda.ErrPromptBlocked, msg)}
	}
	if u := resp.UsageMetadata; u != nil {
		// Counts are cumulative; the last chunk wins.
		s.reply.Usage = coda.Usage{
			InputTokens:     int(u.PromptTokenCount),
			OutputTokens:    int(u.CandidatesTokenCount),
			CacheReadTokens: int(u.CachedContentTokenCount),
			ThinkingTokens:  int(u.ThoughtsTokenCount),
		}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		s.queue = append(s.queue, coda.EventEmptyChunk{})
		return nil
	}

	cand := resp.Candidates[0]
	if cand.FinishReason != "" {
		s.reply.RawStopReason = string(cand.FinishReason)
		s.reply.StopReason = mapFinishReason(cand.FinishReason)
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		s.queue = append(s.queue, coda.EventEmptyChunk{FinishReason: string(cand.FinishReason)})
		return nil
	}
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		s.text.WriteString(p.Text)
		s.queue = append(s.queue, coda.EventTextDelta{Delta: p.Text})
	}
	return nil
}

func (s *stream) fail(err error) error {
	s.state = coda.StreamStateError
	s.reply.RawStopReason = "error"
	s.reply.StopReason = coda.StopError
	if s.ctx.Err() != nil {
		s.reply.RawStopReason = "aborted"
		s.reply.StopReason = coda.StopAborted
	}
	s.err = fmt.Errorf("gemini: %w", classifyError(err))
	return s.err
}

func (s *stream) complete() {
	s.state = coda.StreamStateComplete
	if s.reply.StopReason == "" {
		s.reply.StopReason = coda.StopEndTurn
	}
}

func (s *stream) State() coda.StreamState {
	return s.state
}

func (s *stream) Reply() (coda.Reply, error) {
	if s.state == coda.StreamStateNew {
		return coda.Reply{}, fmt.Errorf("gemini: %w", coda.ErrStreamNotReady)
	}
	r := s.reply
	r.Text = s.text.String()
	r.Timestamp = time.Now()
	return r, nil
}

func (s *stream) Close() error {
	if s.state != coda.StreamStateComplete && s.state != coda.StreamStateError {
		s.state = coda.StreamStateClosed
		s.reply.StopReason = coda.StopAborted
		s.reply.RawStopReason = "aborted"
	}
	s.stop()
	return nil
}

func mapFinishReason(r genai.FinishReason) coda.StopReason {
	switch r {
	case genai.FinishReasonStop:
		return coda.StopEndTurn
	case genai.FinishReasonMaxTokens:
		return coda.StopLength
	case genai.FinishReasonSafety, "BLOCKLIST", "PROHIBITED_CONTENT", "SPII":
		return coda.StopSafety
	case genai.FinishReasonRecitation:
		return coda.StopRecitation
	default:
		return coda.StopUnknown
	}
}
