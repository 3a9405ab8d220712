// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package websocket

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/classycouture/internal/models"
)

// frame is a decoded server message with the data left raw.
type frame struct {
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// serveHub starts an httptest server that attaches every connection to hub.
func serveHub(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		client := NewClient(hub, conn)
		hub.Register <- client
		client.Start()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return f
}

func send(t *testing.T, conn *websocket.Conn, text string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func decodeRecords(t *testing.T, f frame) []models.ProductRecord {
	t.Helper()
	var records []models.ProductRecord
	if err := json.Unmarshal(f.Data, &records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	return records
}

// connect dials and consumes the connect-time new_arrivals push.
func connect(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn := dial(t, srv)
	if f := readFrame(t, conn); f.Type != MessageTypeNewArrivals {
		t.Fatalf("first frame = %s, want new_arrivals", f.Type)
	}
	return conn
}

func TestClientReceivesNewArrivalsOnConnect(t *testing.T) {
	hub := startHub(t, sampleSnapshots(), DefaultHubConfig())
	conn := dial(t, serveHub(t, hub))

	f := readFrame(t, conn)
	if f.Type != MessageTypeNewArrivals {
		t.Fatalf("type = %s, want new_arrivals", f.Type)
	}
	records := decodeRecords(t, f)
	if len(records) != 2 || records[0].ID != 3 || records[1].ID != 2 {
		t.Errorf("records = %+v", records)
	}
	// Snapshots do not filter on stock.
	if records[1].InStock {
		t.Error("expected the out-of-stock arrival to be included")
	}
	waitForClients(t, hub, 1)
}

func TestClientRequests(t *testing.T) {
	hub := startHub(t, sampleSnapshots(), DefaultHubConfig())
	srv := serveHub(t, hub)

	tests := []struct {
		name        string
		request     string
		wantType    string
		wantMessage string
		wantIDs     []int64
	}{
		{"featured", `{"type":"get_featured"}`, MessageTypeFeatured, "", []int64{9}},
		{"new arrivals", `{"type":"get_new_arrivals"}`, MessageTypeNewArrivals, "", []int64{3, 2}},
		{"ping", `{"type":"ping"}`, MessageTypePong, "", nil},
		{"invalid json", `{"type":`, MessageTypeError, "Invalid JSON", nil},
		{"unknown type", `{"type":"subscribe_everything"}`, MessageTypeError, "Unknown message type: subscribe_everything", nil},
		{"missing type", `{}`, MessageTypeError, "Unknown message type: ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := connect(t, srv)
			send(t, conn, tt.request)

			f := readFrame(t, conn)
			if f.Type != tt.wantType {
				t.Fatalf("type = %s, want %s", f.Type, tt.wantType)
			}
			if f.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", f.Message, tt.wantMessage)
			}
			if tt.wantIDs != nil {
				records := decodeRecords(t, f)
				if len(records) != len(tt.wantIDs) {
					t.Fatalf("got %d records, want %d", len(records), len(tt.wantIDs))
				}
				for i, id := range tt.wantIDs {
					if records[i].ID != id {
						t.Errorf("records[%d].ID = %d, want %d", i, records[i].ID, id)
					}
				}
			}

			// The connection survives every reply, including errors.
			send(t, conn, `{"type":"ping"}`)
			if f := readFrame(t, conn); f.Type != MessageTypePong {
				t.Errorf("follow-up type = %s, want pong", f.Type)
			}
		})
	}
}

func TestClientRateLimited(t *testing.T) {
	hub := startHub(t, sampleSnapshots(), HubConfig{ClientRateLimit: 0.001, ClientBurst: 1})
	conn := connect(t, serveHub(t, hub))

	send(t, conn, `{"type":"ping"}`)
	if f := readFrame(t, conn); f.Type != MessageTypePong {
		t.Fatalf("first request type = %s", f.Type)
	}

	send(t, conn, `{"type":"ping"}`)
	f := readFrame(t, conn)
	if f.Type != MessageTypeError || f.Message != errRateLimited {
		t.Errorf("second request = %+v, want rate limit error", f)
	}
}

func TestClientSnapshotFailure(t *testing.T) {
	src := sampleSnapshots()
	src.err = errors.New("catalog offline")
	hub := startHub(t, src, DefaultHubConfig())
	conn := dial(t, serveHub(t, hub))

	f := readFrame(t, conn)
	if f.Type != MessageTypeError || f.Message != errSnapshotLoad {
		t.Errorf("connect frame = %+v, want snapshot error", f)
	}
}

func TestClientReceivesProductUpdates(t *testing.T) {
	hub := startHub(t, sampleSnapshots(), DefaultHubConfig())
	srv := serveHub(t, hub)
	first := connect(t, srv)
	second := connect(t, srv)
	waitForClients(t, hub, 2)

	payload := `{"event_id":"e9","type":"stock_update","product_id":3,"new_stock":0,"out_of_stock":true}`
	hub.BroadcastProductUpdate([]byte(payload))

	for i, conn := range []*websocket.Conn{first, second} {
		f := readFrame(t, conn)
		if f.Type != MessageTypeProductUpdate {
			t.Fatalf("client %d type = %s", i, f.Type)
		}
		var event map[string]interface{}
		if err := json.Unmarshal(f.Data, &event); err != nil {
			t.Fatal(err)
		}
		if event["type"] != "stock_update" || event["out_of_stock"] != true {
			t.Errorf("client %d event = %v", i, event)
		}
	}
}

func TestClientDisconnectUnregisters(t *testing.T) {
	hub := startHub(t, sampleSnapshots(), DefaultHubConfig())
	conn := connect(t, serveHub(t, hub))
	waitForClients(t, hub, 1)

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
	waitForClients(t, hub, 0)
}
