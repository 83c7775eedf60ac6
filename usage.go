package coda

// Usage tracks token consumption for one turn.
//
//	InputTokens     = prompt tokens, including conversation history
//	CacheReadTokens = portion of InputTokens served from the context cache
//	OutputTokens    = reply tokens
//	ThinkingTokens  = tokens spent on internal reasoning, not shown
type Usage struct {
	InputTokens     int
	OutputTokens    int
	CacheReadTokens int
	ThinkingTokens  int
}
