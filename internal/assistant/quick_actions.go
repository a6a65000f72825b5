package assistant

// QuickAction is a suggested prompt rendered as a tappable shortcut.
type QuickAction struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// QuickActions returns the static suggestion catalog. Not persisted per-user.
func QuickActions() []QuickAction {
	return []QuickAction{
		{ID: 1, Text: "When is my next appointment?", Icon: "calendar"},
		{ID: 2, Text: "Show my prescriptions", Icon: "pills"},
		{ID: 3, Text: "What are my recent visits?", Icon: "history"},
		{ID: 4, Text: "How do I book an appointment?", Icon: "plus"},
		{ID: 5, Text: "Clinic hours and location", Icon: "info"},
	}
}
