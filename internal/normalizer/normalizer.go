// Package normalizer turns raw submitted text into an LLM-friendly prompt.
// It recognizes two shapes of input: a raw email (header block, blank line,
// body) and a forwarded-email excerpt with headers embedded inline. Anything
// else passes through verbatim.
package normalizer

import (
	"regexp"
	"strings"
)

// Headers are the fields extracted from email-like content. Empty fields
// were not present in the input.
type Headers struct {
	Subject string
	From    string
	To      string
	Date    string
}

// Message is the normalized view of one submission. FormattedPrompt is
// always non-empty; when no structure was detected it equals the raw text
// and Headers is nil.
type Message struct {
	FormattedPrompt string
	Headers         *Headers
	IsForwarded     bool
}

var (
	headerLineRe      = regexp.MustCompile(`(?im)^(From|To|Subject|Date):`)
	forwardedMarkerRe = regexp.MustCompile(`(?im)^-+\s*(Forwarded message|Original Message)\s*-+`)
	blankLineRe       = regexp.MustCompile(`\r?\n\r?\n`)

	subjectRe = regexp.MustCompile(`(?i)Subject:([^\r\n]+)`)
	fromRe    = regexp.MustCompile(`(?i)From:([^\r\n]+)`)
	toRe      = regexp.MustCompile(`(?i)To:([^\r\n]+)`)
	dateRe    = regexp.MustCompile(`(?i)Date:([^\r\n]+)`)
)

// Normalize parses raw submitted text. It never fails: malformed or missing
// headers simply fall back to the raw text.
func Normalize(raw string) Message {
	if headerLineRe.MatchString(raw) {
		return normalizeRawEmail(raw)
	}
	if forwardedMarkerRe.MatchString(raw) {
		if msg, ok := normalizeForwarded(raw); ok {
			return msg
		}
	}
	return Message{FormattedPrompt: raw}
}

func normalizeRawEmail(raw string) Message {
	parts := blankLineRe.Split(raw, 2)
	headerBlock := parts[0]
	body := ""
	if len(parts) > 1 {
		body = parts[1]
	}

	h := extractHeaders(headerBlock)

	var b strings.Builder
	b.WriteString("ANALYSIS REQUEST: Email Phishing Check\n\n")
	writeHeaderFields(&b, h)
	b.WriteString("\nEMAIL BODY:\n")
	b.WriteString(body)

	return Message{FormattedPrompt: b.String(), Headers: h}
}

func normalizeForwarded(raw string) (Message, bool) {
	// Headers may be buried anywhere in a forwarded excerpt, so the whole
	// text is scanned rather than a leading block.
	h := extractHeaders(raw)
	if *h == (Headers{}) {
		return Message{}, false
	}

	var b strings.Builder
	b.WriteString("ANALYSIS REQUEST: Forwarded Email Phishing Check\n\n")
	writeHeaderFields(&b, h)
	b.WriteString("\nFORWARDED EMAIL CONTENT:\n")
	b.WriteString(raw)

	return Message{FormattedPrompt: b.String(), Headers: h, IsForwarded: true}, true
}

func extractHeaders(text string) *Headers {
	h := &Headers{}
	if m := subjectRe.FindStringSubmatch(text); m != nil {
		h.Subject = strings.TrimSpace(m[1])
	}
	if m := fromRe.FindStringSubmatch(text); m != nil {
		h.From = strings.TrimSpace(m[1])
	}
	if m := toRe.FindStringSubmatch(text); m != nil {
		h.To = strings.TrimSpace(m[1])
	}
	if m := dateRe.FindStringSubmatch(text); m != nil {
		h.Date = strings.TrimSpace(m[1])
	}
	return h
}

func writeHeaderFields(b *strings.Builder, h *Headers) {
	if h.Subject != "" {
		b.WriteString("SUBJECT: " + h.Subject + "\n")
	}
	if h.From != "" {
		b.WriteString("FROM: " + h.From + "\n")
	}
	if h.To != "" {
		b.WriteString("TO: " + h.To + "\n")
	}
	if h.Date != "" {
		b.WriteString("DATE: " + h.Date + "\n")
	}
}
