package requests

// NotificationPayload is the message shape on the mailer queue: a template id
// and a flat parameter map, resolved to subject/body by the worker.
type NotificationPayload struct {
	TemplateID string            `json:"template_id"`
	To         string            `json:"to"`
	Params     map[string]string `json:"params"`
}
