package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (rendered by the worker from Data) or Subject plus Text/HTML
// must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// Valid reports whether the worker can do anything with the job.
func (j EmailJob) Valid() bool {
	if j.To == "" {
		return false
	}
	return j.Template != "" || (j.Subject != "" && (j.Text != "" || j.HTML != ""))
}
