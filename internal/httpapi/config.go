package httpapi

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// CORS configuration. Enabled with allow-all origins unless configured
// otherwise; browser front-ends talk to this server directly.
var (
	corsEnabled        = true
	corsAllowedOrigins []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
// Empty origins means allow all.
func SetCORSOptions(enabled bool, origins []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
}
