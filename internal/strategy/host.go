package strategy

import (
	"fmt"
	"strings"
)

// Host identifies the rendering host family.
type Host string

const (
	// HostWindows is a Windows rendering host.
	HostWindows Host = "windows"
	// HostOther is any host that lays text out like Linux/macOS Chrome.
	HostOther Host = "other"
)

// OverrideMode controls whether a host-specific profile replaces the requested one.
type OverrideMode string

const (
	// OverrideAuto applies the windows profile when the host is detected as Windows.
	OverrideAuto OverrideMode = "auto"
	// OverrideWindows always applies the windows profile.
	OverrideWindows OverrideMode = "windows"
	// OverrideNone never overrides.
	OverrideNone OverrideMode = "none"
)

// ParseOverrideMode parses a configured override mode. Empty means auto.
func ParseOverrideMode(s string) (OverrideMode, error) {
	switch OverrideMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", OverrideAuto:
		return OverrideAuto, nil
	case OverrideWindows:
		return OverrideWindows, nil
	case OverrideNone:
		return OverrideNone, nil
	default:
		return OverrideAuto, fmt.Errorf("unknown host override mode %q", s)
	}
}

// DetectHost classifies a host from its GOOS and the renderer's user agent.
// The user agent comes from the browser itself, so it reflects the machine that
// actually lays out text even when the service runs elsewhere.
func DetectHost(goos, userAgent string) Host {
	if strings.EqualFold(goos, "windows") {
		return HostWindows
	}
	if strings.Contains(userAgent, "Windows NT") {
		return HostWindows
	}
	return HostOther
}

// Override returns the strategy that replaces every requested strategy, if any.
func Override(mode OverrideMode, host Host) (Strategy, bool) {
	switch mode {
	case OverrideWindows:
		return Windows, true
	case OverrideNone:
		return Normal, false
	default:
		if host == HostWindows {
			return Windows, true
		}
		return Normal, false
	}
}
