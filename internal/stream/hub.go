// Package stream broadcasts projected frames to browser clients over
// websockets and relays their key presses back to the viewer.
package stream

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks websocket clients and fans frames out to them.
type Hub struct {
	// OnMessage receives every text message a client sends. It is called
	// from the client's read goroutine and must not block for long.
	OnMessage func(msg string)

	log      *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	last    []byte
}

// NewHub creates a hub. A nil logger uses log.Default().
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		log:     logger,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Local viewer; any origin may watch
			},
		},
	}
}

// Handler returns a mux serving the viewer page at / and the socket at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", serveHome)
	mux.Handle("/ws", h)
	return mux
}

// ServeHTTP upgrades the request and keeps the client until it disconnects.
// New clients get the most recent frame immediately.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	if h.last != nil {
		if err := conn.WriteMessage(websocket.TextMessage, h.last); err != nil {
			h.log.Printf("WebSocket write error: %v", err)
		}
	}
	h.mu.Unlock()
	h.log.Println("New WebSocket client connected")

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
		h.log.Println("WebSocket client disconnected")
	}()

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind == websocket.TextMessage && h.OnMessage != nil {
			h.OnMessage(string(data))
		}
	}
}

// Broadcast sends f to every client. Clients that fail a write are dropped.
func (h *Hub) Broadcast(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Printf("WebSocket write error: %v", err)
			client.Close()
			delete(h.clients, client)
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlContent))
}

const htmlContent = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>polyview</title>
    <style>
        body { margin: 0; background: #111; color: #ccc; font-family: monospace; }
        canvas { display: block; margin: 0 auto; }
        #status { text-align: center; padding: 6px; }
    </style>
</head>
<body>
    <canvas id="view"></canvas>
    <div id="status">connecting...</div>
    <script>
        const canvas = document.getElementById('view');
        const ctx = canvas.getContext('2d');
        const status = document.getElementById('status');
        const ws = new WebSocket('ws://' + location.host + '/ws');

        ws.onmessage = (ev) => {
            const f = JSON.parse(ev.data);
            canvas.width = f.width;
            canvas.height = f.height;
            ctx.fillStyle = f.background;
            ctx.fillRect(0, 0, f.width, f.height);
            for (const p of f.polygons) {
                ctx.beginPath();
                p.points.forEach(([x, y], i) => i ? ctx.lineTo(x, y) : ctx.moveTo(x, y));
                ctx.closePath();
                ctx.strokeStyle = ctx.fillStyle = p.color;
                p.filled ? ctx.fill() : ctx.stroke();
                if (p.label) {
                    const [x, y] = p.points[p.points.length - 1];
                    ctx.fillText(p.label, x + 4, y);
                }
            }
            const s = f.stats;
            status.textContent = s.mesh + ': ' + s.vertices + ' vertices, ' +
                s.polygons + ' polygons (' + s.drawn + ' drawn), ' + s.materials + ' materials';
        };
        ws.onclose = () => { status.textContent = 'disconnected'; };

        const keys = {
            a: 'a', d: 'd', w: 'w', s: 's', q: 'q', e: 'e', r: 'reset',
            ArrowLeft: 'left', ArrowRight: 'right', ArrowUp: 'up', ArrowDown: 'down',
            x: 'x', y: 'y', z: 'z', m: 'm', f: 'f',
        };
        document.addEventListener('keydown', (ev) => {
            const k = keys[ev.key];
            if (k && ws.readyState === WebSocket.OPEN) {
                ws.send(k);
                ev.preventDefault();
            }
        });
    </script>
</body>
</html>
`
