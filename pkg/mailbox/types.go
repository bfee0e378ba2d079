package mailbox

// Message is a received mailbox entry as returned by the mailbox API.
// Messages are read-only: the service creates them and this package
// only scans them, never mutates or persists them.
type Message struct {
	ID      string  `json:"ID"`
	Content Content `json:"Content"`
}

// Content holds the message headers and body.
type Content struct {
	Headers Headers `json:"Headers"`
	Body    string  `json:"Body"`
}

// Headers holds the subset of mail headers the toolkit cares about.
type Headers struct {
	Subject []string `json:"Subject"`
	From    []string `json:"From,omitempty"`
	To      []string `json:"To,omitempty"`
	Date    []string `json:"Date,omitempty"`
}

// Subject returns the first subject header, or "" if none.
// SMS gateway messages carry the phone number and the "SMS" marker here.
func (m *Message) Subject() string {
	if len(m.Content.Headers.Subject) == 0 {
		return ""
	}
	return m.Content.Headers.Subject[0]
}

// Body returns the raw message body.
func (m *Message) Body() string {
	return m.Content.Body
}

// listResponse is the top-level shape of GET /messages.
type listResponse struct {
	Total int       `json:"total"`
	Count int       `json:"count"`
	Items []Message `json:"items"`
}
