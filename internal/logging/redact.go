package logging

import "strings"

// Redacted replaces the value of any credential-bearing attribute.
const Redacted = "[REDACTED]"

var secretKeys = []string{"password", "token", "secret", "authorization"}

func isSecretKey(key string) bool {
	k := strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

// redact returns a copy of the key/value list with secret values masked.
// The input slice is never modified.
func redact(args []any) []any {
	var out []any
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || !isSecretKey(key) {
			continue
		}
		if out == nil {
			out = append([]any(nil), args...)
		}
		out[i+1] = Redacted
	}
	if out == nil {
		return args
	}
	return out
}
