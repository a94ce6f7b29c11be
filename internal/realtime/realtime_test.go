package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(authorize Authorizer) *Hub {
	hub := NewHub(authorize, zerolog.Nop())
	go hub.Run()
	return hub
}

func newTestClient(hub *Hub, userID uint) *Client {
	c := &Client{hub: hub, send: make(chan []byte, sendBufSize), userID: userID}
	hub.register <- c
	return c
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return nil
	}
}

func assertNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("unexpected message %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEnvelope(t *testing.T) {
	id, data, err := envelope("devices.7.telemetry", []byte(`{"sensorType":"temperature","value":21.5}`))
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	var msg outgoingMsg
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, TypeTelemetry, msg.Type)
	assert.Equal(t, uint(7), msg.DeviceID)
	assert.JSONEq(t, `{"sensorType":"temperature","value":21.5}`, string(msg.Payload))

	_, data, err = envelope("devices.7.status", []byte(`{"status":"online"}`))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, TypeStatus, msg.Type)
}

func TestEnvelope_Rejects(t *testing.T) {
	cases := map[string]struct {
		subject string
		payload string
	}{
		"foreign subject": {"tenant.1.job.2.progress", `{}`},
		"bad device id":   {"devices.abc.telemetry", `{}`},
		"upload kind":     {"devices.3.upload", `{}`},
		"not json":        {"devices.3.telemetry", `temperature=21`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := envelope(tc.subject, []byte(tc.payload))
			assert.Error(t, err)
		})
	}
}

func TestHub_BroadcastReachesSubscribersOnly(t *testing.T) {
	hub := newTestHub(nil)
	a := newTestClient(hub, 1)
	b := newTestClient(hub, 2)

	a.handle([]byte(`{"action":"subscribe","deviceId":5}`))
	b.handle([]byte(`{"action":"subscribe","deviceId":6}`))

	hub.Broadcast(5, []byte("for-5"))
	assert.Equal(t, "for-5", string(receive(t, a)))
	assertNothing(t, b)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := newTestHub(nil)
	c := newTestClient(hub, 1)

	c.handle([]byte(`{"action":"subscribe","deviceId":5}`))
	c.handle([]byte(`{"action":"unsubscribe","deviceId":5}`))

	hub.Broadcast(5, []byte("late"))
	assertNothing(t, c)
}

func TestHub_RefusedSubscription(t *testing.T) {
	hub := newTestHub(func(userID, deviceID uint) bool { return userID == 1 && deviceID == 5 })
	owner := newTestClient(hub, 1)
	other := newTestClient(hub, 2)

	owner.handle([]byte(`{"action":"subscribe","deviceId":5}`))
	other.handle([]byte(`{"action":"subscribe","deviceId":5}`))

	hub.Broadcast(5, []byte("reading"))
	assert.Equal(t, "reading", string(receive(t, owner)))
	assertNothing(t, other)
}

func TestHub_UnregisterClosesQueue(t *testing.T) {
	hub := newTestHub(nil)
	c := newTestClient(hub, 1)
	c.handle([]byte(`{"action":"subscribe","deviceId":5}`))

	hub.unregister <- c

	select {
	case _, ok := <-c.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("queue not closed")
	}
}

func TestClient_IgnoresBadCommands(t *testing.T) {
	hub := newTestHub(nil)
	c := newTestClient(hub, 1)

	c.handle([]byte(`not json`))
	c.handle([]byte(`{"action":"subscribe"}`))
	c.handle([]byte(`{"action":"follow","deviceId":5}`))

	hub.Broadcast(5, []byte("x"))
	assertNothing(t, c)
}

func TestServeWS_RequiresToken(t *testing.T) {
	hub := newTestHub(nil)
	cfg := Config{JWTSecret: "secret"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, cfg, w, r)
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(srv.URL + "?token=garbage")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
