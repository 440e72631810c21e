package config

import (
	"log"
	"slices"
	"strings"
)

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustOneOf(value, envName string, allowed ...string) string {
	if !slices.Contains(allowed, value) {
		log.Fatalf("env %s=%q must be one of %s", envName, value, strings.Join(allowed, ", "))
	}
	return value
}
