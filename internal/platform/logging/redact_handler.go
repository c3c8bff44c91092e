package logging

import (
	"log/slog"
	"net/url"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists, in lowercase, the HTTP headers that carry
// credentials. The masq layer and middleware.RedactHeaders both read it.
var SensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"cookie":              true,
	"set-cookie":          true,
}

// Attribute names masked wherever they appear, and name prefixes such as
// "secret_key" or "api_key_v2".
var (
	sensitiveFields   = []string{"password", "secret", "token"}
	sensitivePrefixes = []string{"secret_", "api_key"}
)

// Raw values masked even under harmless attribute names.
var sensitivePatterns = []*regexp.Regexp{
	// Bearer tokens.
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	// JWTs. Ten characters per segment keeps version strings out.
	regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
	// Inline "api_key=..." or "apikey: ...".
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
	// Userinfo in connection URLs, "postgres://todo:secret@db:5432/todos".
	regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+\-.]*://[^:/@\s]+:[^@/\s]+@`),
}

// RedactDSN returns dsn with any URL password replaced, keeping scheme, user,
// host and database visible for diagnostics. Non-URL DSNs such as SQLite file
// paths are returned unchanged.
func RedactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); !ok {
		return dsn
	}
	return u.Redacted()
}

// newRedactAttr builds the masq ReplaceAttr used by every handler New
// creates.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0,
		len(SensitiveHeaders)+len(sensitiveFields)+len(sensitivePrefixes)+len(sensitivePatterns))

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range sensitivePrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range sensitivePatterns {
		opts = append(opts, masq.WithRegex(re))
	}

	return masq.New(opts...)
}
