// Package contact accepts visitor inquiries and reports a two-outcome
// result. Every failure is folded into a Result; nothing is returned as
// an error past Submit.
package contact

import (
	"context"

	"BankCatalog/internal/locale"
)

type Kind string

const (
	KindOK         Kind = "ok"
	KindRejected   Kind = "rejected"
	KindConnection Kind = "connection"
)

type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Kind      Kind   `json:"kind"`
	Reference string `json:"reference,omitempty"`
}

// Submitter delivers a validated form.
type Submitter interface {
	Submit(ctx context.Context, f Form, l locale.Locale) Result
}

var messages = map[Kind]map[locale.Locale]string{
	KindOK: {
		locale.ES: "Mensaje enviado exitosamente",
		locale.EN: "Message sent successfully",
	},
	KindRejected: {
		locale.ES: "Error al enviar el mensaje",
		locale.EN: "Error sending the message",
	},
	KindConnection: {
		locale.ES: "Error de conexión",
		locale.EN: "Connection error",
	},
}

func newResult(k Kind, l locale.Locale, ref string) Result {
	return Result{
		Success:   k == KindOK,
		Message:   locale.Pick(l, messages[k]),
		Kind:      k,
		Reference: ref,
	}
}
