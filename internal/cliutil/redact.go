package cliutil

import (
	"regexp"
	"strings"
)

const redactedPlaceholder = "[redacted]"

var (
	templateVarPattern = regexp.MustCompile(`\$\{[^}]+\}`)
	secretKeyPattern   = regexp.MustCompile(`(?i)\b(` + strings.Join(secretKeys(), "|") + `)\b(\s*[:=]\s*)(["']?)([^"'\s]+)(["']?)`)
)

func secretKeys() []string {
	keys := []string{
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"AWS_SESSION_TOKEN",
		"WANDB_API_KEY",
		"HF_TOKEN",
		"HUGGING_FACE_HUB_TOKEN",
		"MLFLOW_TRACKING_PASSWORD",
		"NEPTUNE_API_TOKEN",
		"COMET_API_KEY",
		"API_KEY",
		"ACCESS_TOKEN",
		"CLIENT_SECRET",
	}
	escaped := make([]string, len(keys))
	for i, key := range keys {
		escaped[i] = regexp.QuoteMeta(key)
	}
	return escaped
}

// RedactSecrets masks common secret placeholders and sensitive key values from
// the supplied string. Trial commands and env overrides routinely embed
// experiment-tracker credentials; they are replaced with a generic [redacted]
// marker before anything reaches user-facing output.
func RedactSecrets(message string) string {
	if message == "" {
		return message
	}
	redacted := templateVarPattern.ReplaceAllStringFunc(message, func(match string) string {
		return "${" + redactedPlaceholder + "}"
	})
	return secretKeyPattern.ReplaceAllString(redacted, "$1$2$3"+redactedPlaceholder+"$5")
}
