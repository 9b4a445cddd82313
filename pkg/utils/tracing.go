package utils

import (
	"strconv"
	"strings"
)

func IsTracingEnabled() bool {
	v := GetEnvTrimmed("OTEL_TRACES_ENABLED")
	if v == "" {
		return false
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}

	return b
}

func OTelServiceName() string {
	serviceName := strings.TrimSpace(GetEnvTrimmed("OTEL_SERVICE_NAME"))
	if serviceName == "" {
		serviceName = "waitlist-api"
	}
	return serviceName
}
