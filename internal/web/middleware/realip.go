package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// TrustedRealIP resolves the client IP from X-Real-IP or X-Forwarded-For,
// but only when the connection comes from one of trustedCIDRs. Otherwise the
// connection address is kept and forwarding headers are ignored.
//
// The resolved IP and the User-Agent are stored on the request context so
// audit entries written by the store record who made the change.
func TrustedRealIP(trustedCIDRs []string) func(http.Handler) http.Handler {
	trustedNets := parseTrusted(trustedCIDRs)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isTrusted(extractIP(r.RemoteAddr), trustedNets) {
				if ip := forwardedIP(r.Header); ip != "" {
					r.RemoteAddr = ip
				}
			}

			ctx := core.WithRequester(r.Context(), core.Requester{IP: clientIP(r), UserAgent: r.UserAgent()})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseTrusted parses CIDRs once at startup. Bare IPs are accepted as
// single-host networks; invalid entries are logged and skipped.
func parseTrusted(cidrs []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}

		_, network, err := net.ParseCIDR(cidr)
		if err == nil {
			nets = append(nets, network)
			continue
		}

		ip := net.ParseIP(cidr)
		if ip == nil {
			slog.Warn("realip: invalid trusted proxy CIDR, skipping",
				"cidr", cidr,
				"error", err,
			)
			continue
		}
		mask := net.CIDRMask(128, 128)
		if ip.To4() != nil {
			mask = net.CIDRMask(32, 32)
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: mask})
	}
	return nets
}

// forwardedIP returns the validated client IP from X-Real-IP, falling back
// to the first X-Forwarded-For hop.
func forwardedIP(h http.Header) string {
	if rip := h.Get("X-Real-IP"); rip != "" {
		if ip := net.ParseIP(strings.TrimSpace(rip)); ip != nil {
			return ip.String()
		}
		return ""
	}

	xff := h.Get("X-Forwarded-For")
	if xff == "" {
		return ""
	}
	first, _, _ := strings.Cut(xff, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}

// clientIP returns the request's client IP without the port.
func clientIP(r *http.Request) string {
	if ip := extractIP(r.RemoteAddr); ip != nil {
		return ip.String()
	}
	return r.RemoteAddr
}

// extractIP parses an IP address from a host:port string or plain IP.
func extractIP(addr string) net.IP {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(addr)
}

// isTrusted checks if an IP is within any of the trusted networks.
func isTrusted(ip net.IP, trusted []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, network := range trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
