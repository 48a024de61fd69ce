// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"kulipoly/internal/i18n"
	"kulipoly/internal/mail"
)

// Contact delivers contact-form submissions to the studio inbox.
type Contact struct {
	sender mail.Sender
	from   string
	to     []string
	site   string
}

// NewContact creates the contact handler. site names the website in the
// email footer. A nil sender fails every submission.
func NewContact(sender mail.Sender, from string, to []string, site string) *Contact {
	return &Contact{sender: sender, from: from, to: to, site: site}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
func (c *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromContext(r.Context())

	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, i18n.T(lang, "contact.required"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" || req.Email == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, i18n.T(lang, "contact.required"))
		return
	}
	if err := validation.Validate(req.Email, is.EmailFormat); err != nil {
		writeError(w, http.StatusBadRequest, i18n.T(lang, "contact.bad_email"))
		return
	}

	email, err := mail.ContactEmail(mail.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}, c.from, c.to, c.site)
	if err != nil {
		slog.Error("build contact email failed", "error", err)
		writeError(w, http.StatusInternalServerError, i18n.T(lang, "contact.failed"))
		return
	}

	if c.sender == nil {
		slog.Error("contact email not sent", "error", mail.ErrNotConfigured)
		writeError(w, http.StatusInternalServerError, i18n.T(lang, "contact.failed"))
		return
	}
	id, err := c.sender.Send(r.Context(), email)
	if err != nil {
		slog.Error("send contact email failed", "error", err)
		writeError(w, http.StatusInternalServerError, i18n.T(lang, "contact.failed"))
		return
	}

	slog.Info("contact message sent", "message_id", id)
	writeOK(w, map[string]string{"id": id, "message": i18n.T(lang, "contact.sent")})
}
