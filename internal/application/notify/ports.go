package notify

import "context"

// EmailPayload trabajo de envío de correo que viaja por la cola.
// El asunto y el cuerpo van ya renderizados: el worker solo entrega.
type EmailPayload struct {
	LogID     string `json:"log_id"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Enqueuer puerto para encolar el envío (implementado sobre la cola Redis).
type Enqueuer interface {
	EnqueueEmail(ctx context.Context, p EmailPayload) error
}

// Mailer puerto de entrega SMTP.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
