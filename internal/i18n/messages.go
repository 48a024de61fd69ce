package i18n

// Server-side strings for API responses shown to visitors. Page copy lives
// in the front end.
var messages = map[Language]map[string]string{
	Original: {
		"contact.sent":      "Pesan berhasil dikirim",
		"contact.failed":    "Gagal mengirim pesan",
		"contact.required":  "Nama, email, dan pesan wajib diisi",
		"contact.bad_email": "Format email tidak valid",
		"not_found":         "Konten tidak ditemukan",
		"rate_limited":      "Terlalu banyak permintaan, coba lagi nanti",
	},
	Target: {
		"contact.sent":      "Message sent successfully",
		"contact.failed":    "Failed to send message",
		"contact.required":  "Name, email, and message are required",
		"contact.bad_email": "Invalid email format",
		"not_found":         "Content not found",
		"rate_limited":      "Too many requests, please try again later",
	},
}

// T returns the message for key in lang, falling back to the original
// language and finally to the key itself.
func T(lang Language, key string) string {
	if m, ok := messages[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := messages[Original][key]; ok {
		return v
	}
	return key
}
