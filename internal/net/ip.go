package net

import (
	"log"
	"net"
)

// GetOutgoingIP finds the preferred local IP address for the share link.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No internet; fall back to scanning local interfaces.
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

func getLocalIPFallback() (string, error) {
	ip := firstIPv4()
	if ip.IsLoopback() {
		log.Println("[share] no suitable local IP found, link generation may fail")
	}
	return ip.String(), nil
}
