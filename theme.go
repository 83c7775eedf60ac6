package coda

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	Prompt  int // Input header and line prompt
	Speaker int // Assistant name before each reply
	Status  int // Startup and banner lines
	Warning int // Recoverable problems
	Error   int // Error messages
	Success int // Success indicators
	Muted   int // Config details, code gutters
	Accent  int // Headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Prompt:  3,
		Speaker: 4,
		Status:  6,
		Warning: 3,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  5,
	}
}
