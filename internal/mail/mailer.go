// Package mail delivers verification codes to users. Delivery goes through a
// shoutrrr service URL (typically smtp://...), so the actual provider is a
// deployment decision.
package mail

import (
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"
	"time"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
	"github.com/sirupsen/logrus"
)

type Message struct {
	Subject string
	HTML    string
}

type Mailer struct {
	serviceURL string
	timeout    time.Duration
}

func New(serviceURL string, timeout time.Duration) *Mailer {
	return &Mailer{serviceURL: serviceURL, timeout: timeout}
}

func (m *Mailer) Enabled() bool { return m.serviceURL != "" }

// Send delivers msg to recipient. With no service URL configured the message
// is logged and dropped, which keeps local development working without an
// SMTP account.
func (m *Mailer) Send(recipient string, msg Message) error {
	if m.serviceURL == "" {
		logrus.WithFields(logrus.Fields{
			"recipient": recipient,
			"subject":   msg.Subject,
		}).Warn("mail delivery disabled, dropping message")
		return nil
	}

	sep := "?"
	if strings.Contains(m.serviceURL, "?") {
		sep = "&"
	}
	target := m.serviceURL + sep + "toaddresses=" + url.QueryEscape(recipient)

	sender, err := shoutrrr.CreateSender(target)
	if err != nil {
		return fmt.Errorf("creating mail sender: %w", err)
	}
	if m.timeout > 0 {
		sender.Timeout = m.timeout
	}
	sender.SetLogger(log.New(io.Discard, "", 0))

	params := stypes.Params{}
	params.SetTitle(msg.Subject)

	for _, err := range sender.Send(msg.HTML, &params) {
		if err != nil {
			return fmt.Errorf("sending mail: %w", err)
		}
	}
	return nil
}
