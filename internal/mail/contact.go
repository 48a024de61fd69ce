// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
)

// NoPhone is shown when the visitor leaves the phone field blank.
const NoPhone = "Not provided"

// Contact is a contact-form submission.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

var contactHTML = template.Must(template.New("contact").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f97316; border-bottom: 2px solid #f97316; padding-bottom: 10px;">New Contact Form Submission</h2>
  <div style="margin: 20px 0;">
    <p style="margin: 10px 0;"><strong>Name:</strong> {{.Name}}</p>
    <p style="margin: 10px 0;"><strong>Email:</strong> {{.Email}}</p>
    <p style="margin: 10px 0;"><strong>Phone:</strong> {{.Phone}}</p>
  </div>
  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="margin-top: 0; color: #333;">Message:</h3>
    <p style="white-space: pre-wrap; color: #555;">{{.Message}}</p>
  </div>
  <p style="color: #888; font-size: 12px; margin-top: 30px;">This email was sent from the contact form on {{.Site}}</p>
</div>
`))

var contactText = texttemplate.Must(texttemplate.New("contact").Parse(`New Contact Form Submission

Name:  {{.Name}}
Email: {{.Email}}
Phone: {{.Phone}}

{{.Message}}

Sent from the contact form on {{.Site}}
`))

// ContactEmail renders a submission into an Email addressed to the studio.
// Visitor input is HTML-escaped; the reply goes to the visitor.
func ContactEmail(c Contact, from string, to []string, site string) (Email, error) {
	phone := strings.TrimSpace(c.Phone)
	if phone == "" {
		phone = NoPhone
	}
	data := struct {
		Name, Email, Phone, Message, Site string
	}{c.Name, c.Email, phone, c.Message, site}

	var html, text bytes.Buffer
	if err := contactHTML.Execute(&html, data); err != nil {
		return Email{}, fmt.Errorf("render contact html: %w", err)
	}
	if err := contactText.Execute(&text, data); err != nil {
		return Email{}, fmt.Errorf("render contact text: %w", err)
	}

	return Email{
		From:    from,
		To:      to,
		ReplyTo: c.Email,
		Subject: "New Contact Form Submission from " + singleLine(c.Name),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// singleLine keeps header values on one line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
