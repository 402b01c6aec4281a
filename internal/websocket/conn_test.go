package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// The session tears the channel down right after queueing the final report,
// so a send immediately followed by Close must still reach the peer.
func TestSendFollowedByCloseIsDelivered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConn(raw)
		go conn.WritePump()
		go conn.ReadPump()

		require.NoError(t, conn.Send(map[string]string{"status": "Completed"}))
		conn.Close()
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")

	// The send/close race is timing-dependent, so run many connections.
	for i := 0; i < 100; i++ {
		peer, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)

		peer.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := peer.ReadMessage()
		require.NoError(t, err, "message queued before Close was dropped (iteration %d)", i)
		require.Contains(t, string(msg), "Completed")

		peer.Close()
	}
}

func TestSendAfterCloseErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConn(raw)
		go conn.WritePump()
		go conn.ReadPump()

		conn.Close()
		require.Error(t, conn.Send(map[string]string{"question": "late"}))
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	peer, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer peer.Close()

	peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := peer.ReadMessage(); err != nil {
			break // close frame or connection teardown, never a message
		}
		t.Fatal("received a message sent after Close")
	}
}
