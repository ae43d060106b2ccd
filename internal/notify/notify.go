// Package notify is the boundary to outbound customer messaging
// (SMS/WhatsApp). Delivery is fire-and-forget: the queue's critical
// path never waits on it and never fails because of it.
package notify

import "log"

type Message struct {
	Phone string
	Body  string
}

// Sender is the external delivery contract.
type Sender interface {
	Send(Message) error
}

// LogSender stands in where no real gateway is configured.
type LogSender struct{}

func (LogSender) Send(m Message) error {
	log.Printf("notify: to=%s body=%q", m.Phone, m.Body)
	return nil
}

type Dispatcher struct {
	sender Sender
	queue  chan Message
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for m := range d.queue {
		if err := d.sender.Send(m); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(m Message) {
	select {
	case d.queue <- m:
	default:
		// never block a mutation on a customer message
		log.Println("notify queue full, dropping message")
	}
}
