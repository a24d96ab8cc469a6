package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint returns the configuration that applies to a request, or nil
// when the default limit applies. An exact path wins; otherwise the longest
// configured prefix ending in "/" is used. Health checks and CORS preflights
// are unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodOptions || (path == "/health" && method == http.MethodGet) {
		return &EndpointConfig{}
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if !strings.EqualFold(config.Method, method) {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if best == nil || len(config.Path) > len(best.Path) {
				best = config
			}
		}
	}
	return best
}
