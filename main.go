package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	snet "Snowfold/internal/net"
	"Snowfold/internal/state"
	"Snowfold/internal/ui"
)

const (
	customURLScheme = "snowfold://"
	port            = 8777
)

func main() {
	args := os.Args
	if len(args) > 1 && strings.HasPrefix(args[1], customURLScheme) {
		runClient(args[1])
	} else {
		runHost()
	}
}

func runHost() {
	log.Println("Starting as HOST")
	session := state.NewSession()
	board := ui.NewWedgeWidget(session)

	hub := snet.NewHub()
	hub.OnOp = func(op state.Op) bool {
		changed := session.ApplyRemote(op)
		if changed {
			board.RemoteChanged()
		}
		return changed
	}
	hub.Snapshot = func() state.Op {
		return state.Op{
			Type:    state.OpSync,
			Strokes: session.Strokes(),
			Site:    state.SiteID(),
		}
	}
	state.OnLocalOp = func(op state.Op) {
		hub.Broadcast(op, nil)
	}

	go func() {
		if err := hub.ListenAndServe(port); err != nil {
			log.Printf("[share] hosting unavailable: %v", err)
			board.SetStatus("Hosting unavailable, drawing locally only")
		}
	}()

	if server, err := snet.Advertise(port); err != nil {
		log.Printf("[share] mDNS advertise failed: %v", err)
	} else {
		defer server.Shutdown()
	}

	hostIP, err := snet.GetOutgoingIP()
	if err != nil {
		log.Printf("[share] no local IP: %v", err)
		hostIP = "127.0.0.1"
	}
	shareLink := fmt.Sprintf("%s%s:%d", customURLScheme, hostIP, port)
	ui.RunApp(shareLink, session, board)
}

func runClient(link string) {
	log.Println("Starting as CLIENT")
	session := state.NewSession()
	board := ui.NewWedgeWidget(session)

	addr := strings.TrimPrefix(link, customURLScheme)
	addr = strings.TrimSuffix(addr, "/")
	if addr == "" {
		// Bare snowfold:// link: discover a host on the LAN.
		addr = discoverHost()
	}

	client, err := snet.Join(addr, func(op state.Op) {
		if session.ApplyRemote(op) {
			board.RemoteChanged()
		}
	})
	if err != nil {
		log.Printf("[share] join failed: %v", err)
		board.StatusBar().SetText(fmt.Sprintf("Could not join %s, drawing locally", addr))
	} else {
		defer client.Close()
		state.OnLocalOp = func(op state.Op) {
			if err := client.Send(op); err != nil {
				log.Printf("[share] send failed: %v", err)
			}
		}
		board.StatusBar().SetText("Connected to " + addr)
	}

	ui.RunApp("", session, board)
}

// discoverHost returns the first advertised session found, or localhost as a
// last resort.
func discoverHost() string {
	found := make(chan string, 1)
	go func() {
		err := snet.Browse(func(addr string) {
			select {
			case found <- addr:
			default:
			}
		})
		if err != nil {
			log.Printf("[share] discovery failed: %v", err)
		}
	}()
	select {
	case addr := <-found:
		log.Printf("[share] discovered host at %s", addr)
		return addr
	case <-time.After(3 * time.Second):
		return fmt.Sprintf("127.0.0.1:%d", port)
	}
}
