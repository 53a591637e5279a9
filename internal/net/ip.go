package net

import (
	"log"
	"net"
)

// OutgoingIP finds the local address other machines on the LAN should use
// to reach this host. No packet is sent: dialing UDP only selects a route.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No default route, fall back to the first usable interface.
		return interfaceIP(net.InterfaceAddrs)
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

func interfaceIP(addrs func() ([]net.Addr, error)) string {
	list, err := addrs()
	if err != nil {
		log.Printf("[HOST] Could not list interfaces: %v", err)
		return "127.0.0.1"
	}
	for _, a := range list {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	log.Println("[HOST] No suitable local IP found, the share link may not work")
	return "127.0.0.1"
}
