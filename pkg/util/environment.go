package util

import (
	"os"
	"strings"
)

// EnvironmentPrefix is prepended to every variable fremantleline reads.
const EnvironmentPrefix = "FREMANTLELINE_"

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentVariable returns FREMANTLELINE_<name>, or fallback when unset or blank.
func GetEnvironmentVariable(name string, fallback string) string {
	value := strings.TrimSpace(GetEnvironmentVariables()[EnvironmentPrefix+name])

	if value == "" {
		return fallback
	}

	return value
}
