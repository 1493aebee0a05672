package telegram

import (
	"html"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/phuslu/log"
	"github.com/pkg/errors"
)

// telegram rejects messages above 4096 characters; leave room for the <pre> wrapper
const maxMessageLen = 4000

// Notifier posts reports and charts to a single chat.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

type Option func(*options)

type options struct {
	endpoint string
	client   *http.Client
}

// WithEndpoint points the bot at another Bot API server, e.g. a local one.
// endpoint uses the tgbotapi.APIEndpoint format.
func WithEndpoint(endpoint string, client *http.Client) Option {
	return func(o *options) {
		o.endpoint = endpoint
		if client != nil {
			o.client = client
		}
	}
}

func NewNotifier(token string, chatID int64, opts ...Option) (*Notifier, error) {
	o := options{endpoint: tgbotapi.APIEndpoint, client: &http.Client{}}
	for _, opt := range opts {
		opt(&o)
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, o.endpoint, o.client)
	if err != nil {
		return nil, errors.Wrap(err, "telegram: init bot")
	}
	log.Info().Str("bot", api.Self.UserName).Int64("chat_id", chatID).Msg("telegram: bot initialized")
	return &Notifier{api: api, chatID: chatID}, nil
}

// SendReport sends text as preformatted HTML, split on line boundaries when it is too long
// for one message.
func (n *Notifier) SendReport(text string) error {
	for _, chunk := range splitMessage(text, maxMessageLen) {
		msg := tgbotapi.NewMessage(n.chatID, "<pre>"+html.EscapeString(chunk)+"</pre>")
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := n.api.Send(msg); err != nil {
			return errors.Wrap(err, "telegram: send report")
		}
	}
	return nil
}

// SendChart uploads a PNG image with a caption.
func (n *Notifier) SendChart(name string, png []byte, caption string) error {
	photo := tgbotapi.NewPhoto(n.chatID, tgbotapi.FileBytes{Name: name, Bytes: png})
	photo.Caption = caption
	if _, err := n.api.Send(photo); err != nil {
		return errors.Wrapf(err, "telegram: send %s", name)
	}
	return nil
}

func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var out []string
	var cur strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			out = append(out, line[:limit])
			line = line[limit:]
		}
		if cur.Len()+len(line) > limit {
			out = append(out, cur.String())
			cur.Reset()
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
