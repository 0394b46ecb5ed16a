// emocam-watch tails a running emocam dashboard from the terminal.
// It prints every status change, banner and alert pushed over /ws/display.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-emocam/pkg/display"
	"github.com/teslashibe/go-emocam/pkg/web"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "Dashboard host:port")
	verbose := flag.Bool("v", false, "Print the ranked probabilities when the result changes")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws/display"}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", u.String(), err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}()

	fmt.Printf("Watching %s (Ctrl+C to exit)\n", u.String())

	w := &watcher{verbose: *verbose}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return
			}
			fmt.Fprintf(os.Stderr, "connection lost: %v\n", err)
			os.Exit(1)
		}

		var ev web.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			fmt.Fprintf(os.Stderr, "bad event: %v\n", err)
			continue
		}
		w.handle(ev)
	}
}

// watcher prints only what changed between consecutive state events.
type watcher struct {
	verbose bool
	status  string
	bars    string
	banners int
}

func (w *watcher) handle(ev web.Event) {
	stamp := time.Now().Format("15:04:05")

	switch ev.Type {
	case web.EventAlert:
		fmt.Printf("%s ALERT  %s\n", stamp, ev.Message)

	case web.EventState:
		if ev.State == nil {
			return
		}
		st := ev.State

		// Banners are prepended, so new ones sit at the front.
		if n := len(st.Banners); n > w.banners {
			for _, b := range st.Banners[:n-w.banners] {
				fmt.Printf("%s BANNER %s\n", stamp, b)
			}
		}
		w.banners = len(st.Banners)

		if st.Status != w.status {
			w.status = st.Status
			fmt.Printf("%s %s %s\n", stamp, st.Glyph, st.Status)
		}

		if key := barsKey(st.Bars); w.verbose && key != w.bars {
			w.bars = key
			for _, b := range st.Bars {
				fmt.Printf("         %-9s %6s\n", b.Label, b.Text)
			}
		}
	}
}

func barsKey(bars []display.Bar) string {
	var sb strings.Builder
	for _, b := range bars {
		sb.WriteString(b.Label)
		sb.WriteString(b.Text)
	}
	return sb.String()
}
