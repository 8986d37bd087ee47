package cmd

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/canteen-sim/canteen-sim/sim"
	"github.com/canteen-sim/canteen-sim/sim/stats"
)

var serveAddr string

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		return true
	},
}

// ClientMessage is a command from a websocket client.
type ClientMessage struct {
	Type   string      `json:"type"`
	Config *sim.Config `json:"config,omitempty"`
}

// ServerMessage is a reply sent to a websocket client.
type ServerMessage struct {
	Type    string               `json:"type"`
	Config  *sim.Config          `json:"config,omitempty"`
	Summary *stats.Summary       `json:"summary,omitempty"`
	Records []stats.EntityRecord `json:"records,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// safeConn wraps a WebSocket connection with a mutex to prevent concurrent writes
type safeConn struct {
	*websocket.Conn
	writeMu sync.Mutex
}

func (sc *safeConn) WriteJSON(v interface{}) error {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	return sc.Conn.WriteJSON(v)
}

// runForClient executes one simulation and reports the outcome on the
// connection. Errors are sent to the client rather than closing it, so a
// rejected config can be corrected and resubmitted.
func runForClient(conn *safeConn, cfg sim.Config) {
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		logrus.Warnf("Rejected run request: %v", err)
		conn.WriteJSON(ServerMessage{Type: "error", Error: err.Error()})
		return
	}

	result := s.Run()
	summary := stats.Summarize(result)
	updatePrometheusMetrics(summary)

	logrus.Infof("Run finished: served=%d mean_wait=%.2f end_clock=%.2f",
		summary.TotalServed, summary.MeanWait, summary.EndClock)

	msg := ServerMessage{
		Type:    "result",
		Config:  &cfg,
		Summary: summary,
		Records: result.Records,
	}
	if err := conn.WriteJSON(msg); err != nil {
		logrus.Errorf("Error sending result: %v", err)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("Error upgrading connection: %v", err)
		return
	}
	defer conn.Close()

	safeConn := &safeConn{Conn: conn}
	logrus.Info("Client connected")

	// Send the defaults so the client can prefill its form
	defaults := sim.DefaultConfig()
	if err := safeConn.WriteJSON(ServerMessage{Type: "defaults", Config: &defaults}); err != nil {
		logrus.Errorf("Error sending defaults: %v", err)
		return
	}

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.Errorf("Error reading message: %v", err)
			}
			break
		}

		logrus.Debugf("Received command: %s", msg.Type)

		switch msg.Type {
		case "run":
			cfg := sim.DefaultConfig()
			if msg.Config != nil {
				cfg = *msg.Config
			}
			runForClient(safeConn, cfg)

		case "defaults":
			defaults := sim.DefaultConfig()
			safeConn.WriteJSON(ServerMessage{Type: "defaults", Config: &defaults})

		default:
			safeConn.WriteJSON(ServerMessage{Type: "error", Error: "unknown command: " + msg.Type})
		}
	}

	logrus.Info("Client disconnected")
}

// serveCmd runs simulations on demand over a websocket endpoint
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulation runs over a websocket API with Prometheus metrics",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		initPrometheusMetrics()

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", handleWebSocket)
		mux.Handle("/metrics", promhttp.Handler())

		logrus.Infof("WebSocket endpoint: ws://%s/ws", serveAddr)
		logrus.Infof("Metrics endpoint: http://%s/metrics", serveAddr)
		logrus.Fatal(http.ListenAndServe(serveAddr, mux))
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "Listen address for the websocket and metrics endpoints")
	serveCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(serveCmd)
}
