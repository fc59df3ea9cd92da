// Package netinfo figures out where this server is reachable and reports the
// address to an external webhook, so the mobile app can discover the backend
// without a fixed hostname.
package netinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const checkIPURL = "https://checkip.amazonaws.com"

var client = &http.Client{}

// PublicIP asks an external service which address this host appears as.
func PublicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checkIPURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checkip returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", err
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("checkip returned %q, not an IP address", ip)
	}
	return ip, nil
}

// LocalIP returns the first non-loopback IPv4 address of this host.
func LocalIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}

	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", fmt.Errorf("no non-loopback IPv4 address found")
}

// IsPortOpen probes whether ip:port accepts TCP connections.
func IsPortOpen(ip, port string, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(ip, port), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// ReachableAddress picks the address clients should use: the public IP when
// the port is open from outside, otherwise the LAN address.
func ReachableAddress(ctx context.Context, port string) (addr string, public bool) {
	if ip, err := PublicIP(ctx); err == nil && IsPortOpen(ip, port, 3*time.Second) {
		return net.JoinHostPort(ip, port), true
	}

	ip, err := LocalIP()
	if err != nil {
		return net.JoinHostPort("127.0.0.1", port), false
	}
	return net.JoinHostPort(ip, port), false
}

// Announce posts the server address to the configured webhook.
func Announce(ctx context.Context, webhookURL, address string, reachable bool) error {
	payload, err := json.Marshal(map[string]interface{}{
		"address":   address,
		"reachable": reachable,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("announce webhook returned status %d", resp.StatusCode)
	}
	return nil
}
