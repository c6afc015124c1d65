package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"photoshare/internal/models"
	"photoshare/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestHub_NilAndClosed(t *testing.T) {
	var nilHub *Hub
	nilHub.Broadcast([]byte("ignored"))

	h := NewHub(nil)
	id, send, ok := h.register()
	if !ok || h.Count() != 1 {
		t.Fatalf("register failed: ok=%v count=%d", ok, h.Count())
	}
	h.Broadcast([]byte("hello"))
	if msg := <-send; string(msg) != "hello" {
		t.Fatalf("got %q", msg)
	}

	// A full buffer drops messages instead of blocking
	for i := 0; i < sendBuffer+5; i++ {
		h.Broadcast([]byte("x"))
	}
	if len(send) != sendBuffer {
		t.Fatalf("buffer len=%d", len(send))
	}

	h.Close()
	if h.Count() != 0 {
		t.Fatalf("clients left after close: %d", h.Count())
	}
	h.unregister(id) // already gone
	if _, _, ok := h.register(); ok {
		t.Fatalf("closed hub must refuse clients")
	}
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.Count())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocket_BroadcastsOutOfBandFragments(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(nil)
	gal := &mockGallery{image: models.Image{ID: 5, Likes: 8}}
	h := newTestHandler(t, &service.Service{Gallery: gal}, Options{Hub: hub})

	srv := httptest.NewServer(h.InitRoutes())
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()
	waitForClients(t, hub, 1)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/like/5", nil)
	req.Header.Set("HX-Request", "true")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("like status=%d", resp.StatusCode)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	got := string(msg)
	if !strings.Contains(got, `id="likes-5" hx-swap-oob="true"`) || !strings.Contains(got, "9 Likes") {
		t.Fatalf("unexpected broadcast: %s", got)
	}

	// Closing the hub ends the stream
	hub.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected close after hub shutdown")
	}
}

func TestWebSocket_LivePageShell(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gal := &mockGallery{}
	h := newTestHandler(t, &service.Service{Gallery: gal}, Options{Hub: NewHub(nil)})
	r := h.InitRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(w.Body.String(), `ws-connect="/ws"`) {
		t.Fatalf("live page should connect to /ws: %s", w.Body.String())
	}
}
