package notify

import "github.com/rs/zerolog"

// Sender entrega a notificação de fato (e-mail, webhook, etc).
type Sender interface {
	Send(p Payload) error
}

// Dispatcher desacopla a entrega do caminho da requisição: fila em memória,
// worker único, descarte quando cheia. Falha de envio nunca desfaz a reserva.
type Dispatcher struct {
	sender Sender
	queue  chan Payload
	log    zerolog.Logger
}

func NewDispatcher(sender Sender, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Payload, 100),
		log:    log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for p := range d.queue {
		if err := d.sender.Send(p); err != nil {
			d.log.Error().
				Err(err).
				Str("kind", string(p.Kind)).
				Str("customer", p.CustomerEmail).
				Msg("notification send failed")
		}
	}
}

func (d *Dispatcher) Dispatch(p Payload) {
	select {
	case d.queue <- p:
		// enviado
	default:
		// fila cheia: descarta a notificação em vez de bloquear a requisição
		d.log.Warn().Str("kind", string(p.Kind)).Msg("notify queue full, dropping payload")
	}
}
