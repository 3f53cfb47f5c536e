// Package log provides secure logging built on the standard slog package.
//
// The SecureHandler wraps any slog.Handler and masks:
//   - attributes whose key names a secret (cookie, authorization, token...)
//   - values that look like bearer tokens, JWTs or access keys
//   - secret query parameters and userinfo in URL values, so the src of a
//     redacted image can be logged without leaking a signed download link
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("media hosted on restricted site",
//	    "src", "https://cdn.example/x.jpg?X-Amz-Signature=abc", // query value masked
//	)
//	slog.SetDefault(logger)
package log
