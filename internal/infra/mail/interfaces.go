package mail

type Sender interface {
	Send(to, subject, body string) error
}

var _ Sender = (*SMTPSender)(nil)
