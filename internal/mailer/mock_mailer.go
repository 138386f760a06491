package mailer

import "sync"

// MockMailer records sent mails instead of delivering them.
type MockMailer struct {
	mu    sync.Mutex
	Mails []MockMail
}

type MockMail struct {
	Recipient    string
	TemplateFile string
	Data         any
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Mails = append(m.Mails, MockMail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// Sent returns a snapshot of the recorded mails, safe to read while
// other goroutines are still sending.
func (m *MockMailer) Sent() []MockMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	mails := make([]MockMail, len(m.Mails))
	copy(mails, m.Mails)

	return mails
}
