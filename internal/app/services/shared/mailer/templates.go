package mailer

import (
	"bytes"
	"fmt"
	"text/template"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/exceptions"
)

type mailTemplate struct {
	Subject string
	Body    *template.Template
}

var mailTemplates = map[string]mailTemplate{
	constvars.TemplateBookingConfirmed: {
		Subject: "Your appointment is confirmed",
		Body: template.Must(template.New(constvars.TemplateBookingConfirmed).Parse(
			"Hi {{.patient_name}},\n\n" +
				"Your appointment with {{.doctor_name}} is confirmed for {{.timeslot}}.\n" +
				"{{if .meeting_link}}Join here: {{.meeting_link}}\n{{end}}" +
				"\nSee you there,\nTheraMind",
		)),
	},
	constvars.TemplateAppointmentCancelled: {
		Subject: "Your appointment was cancelled",
		Body: template.Must(template.New(constvars.TemplateAppointmentCancelled).Parse(
			"Hi {{.patient_name}},\n\n" +
				"Your appointment with {{.doctor_name}} on {{.timeslot}} was cancelled by {{.actor}}.\n" +
				"\nTheraMind",
		)),
	},
	constvars.TemplateAppointmentRescheduled: {
		Subject: "Your appointment was rescheduled",
		Body: template.Must(template.New(constvars.TemplateAppointmentRescheduled).Parse(
			"Hi {{.patient_name}},\n\n" +
				"Your appointment with {{.doctor_name}} was moved to {{.timeslot}}.\n" +
				"{{if .meeting_link}}Join here: {{.meeting_link}}\n{{end}}" +
				"\nTheraMind",
		)),
	},
}

// RenderTemplate resolves a template id into a subject line and plain-text
// body using the payload parameter map.
func RenderTemplate(templateID string, params map[string]string) (subject string, body string, err error) {
	tpl, ok := mailTemplates[templateID]
	if !ok {
		return "", "", exceptions.ErrTemplateNotFound(fmt.Errorf("unknown template id %q", templateID), templateID)
	}

	var buf bytes.Buffer
	if err := tpl.Body.Execute(&buf, params); err != nil {
		return "", "", exceptions.ErrTemplateRender(err, templateID)
	}
	return tpl.Subject, buf.String(), nil
}
