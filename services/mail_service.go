package services

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"sync"

	"github.com/shoppy-store/shoppy-api/config"
)

// Mailer is the outbound-notification interface used by order fulfillment.
// Enqueue is fire-and-forget: it never blocks the calling request and gives
// no delivery feedback.
type Mailer interface {
	Enqueue(subject, body, recipient string)
}

var mailerInstance Mailer

// InitMailer initializes the mailer instance
func InitMailer(m Mailer) Mailer {
	mailerInstance = m
	return mailerInstance
}

// GetMailer returns the initialized mailer instance
func GetMailer() Mailer {
	return mailerInstance
}

// SetMailer sets the mailer instance (primarily for testing)
func SetMailer(m Mailer) {
	mailerInstance = m
}

// NopMailer discards every message. Installed when no mail relay is
// configured so fulfillment still works in development.
type NopMailer struct{}

// Enqueue drops the message
func (NopMailer) Enqueue(subject, body, recipient string) {
	log.Printf("mail disabled, dropping %q to %s", subject, recipient)
}

type mailMessage struct {
	subject   string
	body      string
	recipient string
}

// Dispatcher sends notifications over a single SMTP connection established at
// construction time and reused for every message. One worker goroutine drains
// the queue; a full queue drops the message. At most one delivery attempt is
// made per message, with no retry and no confirmation.
type Dispatcher struct {
	client *smtp.Client
	from   string
	queue  chan mailMessage
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewDispatcher dials the outbound relay, negotiates STARTTLS, and
// authenticates. Any failure here is fatal to the instance: the caller gets
// an error and no Dispatcher.
func NewDispatcher(cfg *config.Config) (*Dispatcher, error) {
	client, err := smtp.Dial(cfg.SMTPAddr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mail relay: %w", err)
	}

	if err := client.StartTLS(&tls.Config{ServerName: cfg.SMTPHost}); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start TLS with mail relay: %w", err)
	}

	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to authenticate with mail relay: %w", err)
	}

	d := &Dispatcher{
		client: client,
		from:   cfg.MailFrom,
		queue:  make(chan mailMessage, 64),
		done:   make(chan struct{}),
	}
	go d.run()

	return d, nil
}

// Enqueue submits a message for delivery without blocking. When the queue is
// full, or the dispatcher has been closed, the message is dropped and logged.
func (d *Dispatcher) Enqueue(subject, body, recipient string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		log.Printf("mailer closed, dropping message to %s", recipient)
		return
	}
	select {
	case d.queue <- mailMessage{subject: subject, body: body, recipient: recipient}:
	default:
		log.Printf("mail queue full, dropping message to %s", recipient)
	}
}

// run drains the queue; send failures are logged and swallowed
func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		if err := d.send(msg); err != nil {
			log.Printf("failed to send mail to %s: %v", msg.recipient, err)
		}
	}
}

func (d *Dispatcher) send(msg mailMessage) error {
	if err := d.client.Mail(d.from); err != nil {
		return err
	}
	if err := d.client.Rcpt(msg.recipient); err != nil {
		return err
	}

	w, err := d.client.Data()
	if err != nil {
		return err
	}

	payload := "From: " + d.from + "\r\n" +
		"To: " + msg.recipient + "\r\n" +
		"Subject: " + msg.subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		msg.body
	if _, err := w.Write([]byte(payload)); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// Close stops the worker after the queue drains and quits the connection.
// Calling Close more than once is a no-op.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
	return d.client.Quit()
}
