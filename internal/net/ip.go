package net

import (
	"log"
	"net"
	"strconv"
)

// GetOutgoingIP finds the preferred local IP address to share with viewers.
func GetOutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route out, look at the interfaces instead.
		return firstIPv4().String()
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// firstIPv4 returns the first address of an up, non-loopback interface,
// falling back to loopback.
func firstIPv4() net.IP {
	ifaces, err := net.Interfaces()
	if err != nil {
		log.Printf("[NET] Listing interfaces: %v", err)
		return net.IPv4(127, 0, 0, 1)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}

// FeedURL is the websocket address viewers dial to reach a feed on port.
func FeedURL(host string, port int) string {
	return "ws://" + net.JoinHostPort(host, strconv.Itoa(port)) + FeedPath
}
