package telegram

import (
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type botServer struct {
	mu      sync.Mutex
	methods []string
	texts   []string
	files   []string
	chatIDs []string
}

func (b *botServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := path.Base(r.URL.Path)
	b.mu.Lock()
	b.methods = append(b.methods, method)
	switch method {
	case "sendMessage":
		_ = r.ParseForm()
		b.texts = append(b.texts, r.PostForm.Get("text"))
		b.chatIDs = append(b.chatIDs, r.PostForm.Get("chat_id"))
	case "sendPhoto":
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			b.chatIDs = append(b.chatIDs, r.MultipartForm.Value["chat_id"][0])
			for _, fh := range r.MultipartForm.File["photo"] {
				b.files = append(b.files, fh.Filename)
			}
		}
	}
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if method == "getMe" {
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"risk","username":"risk_bot"}}`))
		return
	}
	_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
}

func newTestNotifier(t *testing.T) (*Notifier, *botServer) {
	t.Helper()
	bs := &botServer{}
	srv := httptest.NewServer(bs)
	t.Cleanup(srv.Close)
	n, err := NewNotifier("TOKEN", 42, WithEndpoint(srv.URL+"/bot%s/%s", srv.Client()))
	require.NoError(t, err)
	return n, bs
}

func TestNotifier_SendReport(t *testing.T) {
	n, bs := newTestNotifier(t)

	require.NoError(t, n.SendReport("AAA vs BBB\nBeta: 1.0000 <x>\n"))
	require.Equal(t, []string{"getMe", "sendMessage"}, bs.methods)
	assert.Equal(t, "<pre>AAA vs BBB\nBeta: 1.0000 &lt;x&gt;\n</pre>", bs.texts[0])
	assert.Equal(t, "42", bs.chatIDs[0])
}

func TestNotifier_SendChart(t *testing.T) {
	n, bs := newTestNotifier(t)

	require.NoError(t, n.SendChart("comparison.png", []byte("\x89PNG fake"), "AAA vs BBB"))
	assert.Equal(t, []string{"getMe", "sendPhoto"}, bs.methods)
	assert.Equal(t, []string{"comparison.png"}, bs.files)
}

func TestNotifier_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := NewNotifier("BAD", 42, WithEndpoint(srv.URL+"/bot%s/%s", srv.Client()))
	assert.Error(t, err)
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", 10))

	parts := splitMessage("aaaa\nbbbb\ncccc\n", 10)
	assert.Equal(t, []string{"aaaa\nbbbb\n", "cccc\n"}, parts)

	parts = splitMessage(strings.Repeat("x", 25), 10)
	assert.Equal(t, []string{"xxxxxxxxxx", "xxxxxxxxxx", "xxxxx"}, parts)
}
