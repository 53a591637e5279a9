package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service hosts advertise.
const ServiceType = "_mispaint._tcp"

// ErrNoHost is returned by Browse when no host answered in time.
var ErrNoHost = errors.New("no MisPaint host found on the local network")

// Advertise publishes the hub listening on port over mDNS until the
// returned server is shut down.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, []string{"MisPaint"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] Advertising %s on port %d as %s", ServiceType, port, host)
	return server, nil
}

// Browse queries the local network for a host and returns the first one to
// answer as ip:port. It gives up after timeout or when ctx is done.
func Browse(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	errc := make(chan error, 1)

	go func() {
		defer close(found)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			select {
			case found <- entryAddr(e):
			default:
			}
		}
	}()
	go func() {
		params := mdns.DefaultParams(ServiceType)
		params.Entries = entries
		params.Timeout = timeout
		params.DisableIPv6 = true
		errc <- mdns.Query(params)
		close(entries)
	}()

	select {
	case addr, ok := <-found:
		if ok {
			log.Printf("[MDNS] Found host at %s", addr)
			return addr, nil
		}
		if err := <-errc; err != nil {
			return "", fmt.Errorf("mDNS query failed: %w", err)
		}
		return "", ErrNoHost
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func entryAddr(e *mdns.ServiceEntry) string {
	return net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port))
}
