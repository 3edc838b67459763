package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/matt-g-everett/ledanim/stream"
	"github.com/rs/cors"
	"github.com/rs/xid"
)

const (
	// FeedInterval is how often /ws watchers are sent the state.
	FeedInterval = 100 * time.Millisecond
	writeWait    = 5 * time.Second
)

// Runner runs fn on the animation's scheduling goroutine and waits for it.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// Control is what the API drives.
type Control interface {
	Pause()
	Resume()
	Reset()
	Replay()
	Retarget(pos float64) error
	Snapshot() stream.Snapshot
}

// Api serves HTTP controls for the running animation.
type Api struct {
	runner   Runner
	control  Control
	router   *mux.Router
	upgrader websocket.Upgrader
	interval time.Duration
}

// NewApi creates an Api that runs every request against control via runner.
func NewApi(runner Runner, control Control) *Api {
	a := new(Api)
	a.runner = runner
	a.control = control
	a.interval = FeedInterval
	a.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	a.router = mux.NewRouter().StrictSlash(true)
	a.router.HandleFunc("/pause", a.action(control.Pause)).Methods(http.MethodPost)
	a.router.HandleFunc("/resume", a.action(control.Resume)).Methods(http.MethodPost)
	a.router.HandleFunc("/reset", a.action(control.Reset)).Methods(http.MethodPost)
	a.router.HandleFunc("/play", a.action(control.Replay)).Methods(http.MethodPost)
	a.router.HandleFunc("/target", a.handleTarget).Methods(http.MethodPost)
	a.router.HandleFunc("/state", a.handleState).Methods(http.MethodGet)
	a.router.HandleFunc("/ws", a.handleFeed)
	return a
}

// ServeHTTP implements http.Handler.
func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Handler returns the Api with CORS enabled for browser clients.
func (a *Api) Handler() http.Handler {
	return cors.Default().Handler(a)
}

// Serve listens on listen until the server fails.
func (a *Api) Serve(listen string) error {
	log.Printf("Listening on %s...", listen)
	return http.ListenAndServe(listen, a.Handler())
}

func respondWithJSON(m interface{}, statusCode int, w http.ResponseWriter) {
	payload, err := json.Marshal(m)
	if err != nil {
		log.Printf("Failed to encode response: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(payload); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func respondWithError(reason string, statusCode int, w http.ResponseWriter) {
	respondWithJSON(map[string]interface{}{
		"ok":     false,
		"reason": reason,
	}, statusCode, w)
}

func (a *Api) action(fn func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.runner.Do(r.Context(), fn); err != nil {
			respondWithError(err.Error(), http.StatusServiceUnavailable, w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *Api) handleTarget(w http.ResponseWriter, r *http.Request) {
	pos, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil || pos < 0 || pos > 1 {
		respondWithError("value must be a number in [0, 1]", http.StatusBadRequest, w)
		return
	}

	var retargetErr error
	if err := a.runner.Do(r.Context(), func() { retargetErr = a.control.Retarget(pos) }); err != nil {
		respondWithError(err.Error(), http.StatusServiceUnavailable, w)
		return
	}
	if retargetErr != nil {
		respondWithError(retargetErr.Error(), http.StatusConflict, w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) snapshot(ctx context.Context) (stream.Snapshot, error) {
	var snapshot stream.Snapshot
	err := a.runner.Do(ctx, func() { snapshot = a.control.Snapshot() })
	return snapshot, err
}

func (a *Api) handleState(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.snapshot(r.Context())
	if err != nil {
		respondWithError(err.Error(), http.StatusServiceUnavailable, w)
		return
	}
	respondWithJSON(snapshot, http.StatusOK, w)
}

// handleFeed streams the state to a websocket watcher until it goes away.
func (a *Api) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	id := xid.New().String()
	log.Printf("Watcher %s from %s connected", id, conn.RemoteAddr())

	// Watchers never send anything; reading only notices them leaving.
	closing := make(chan struct{})
	go func() {
		defer close(closing)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("Watcher %s closed unexpectedly: %v", id, err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		snapshot, err := a.snapshot(ctx)
		cancel()
		if err != nil {
			log.Printf("Watcher %s: %v", id, err)
			return
		}

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Watcher %s: %v", id, err)
			return
		}
		if err := conn.WriteJSON(snapshot); err != nil {
			log.Printf("Watcher %s disconnected: %v", id, err)
			return
		}

		select {
		case <-closing:
			log.Printf("Watcher %s disconnected", id)
			return
		case <-ticker.C:
		}
	}
}
