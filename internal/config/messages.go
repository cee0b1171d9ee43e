package config

import "fmt"

const (
	errMissingEnvFmt = "environment variable %s must be set"
)

type messageBuilders struct {
	missingEnv func(string) string
}

func newMessageBuilders() messageBuilders {
	return messageBuilders{
		missingEnv: func(key string) string {
			return fmt.Sprintf(errMissingEnvFmt, key)
		},
	}
}

var messages = newMessageBuilders()
