// Torii is an authenticated forwarding gateway for AI text generation.
//
// It accepts JSON generation requests over HTTP, verifies bearer
// credentials, forwards the payload to the upstream generateContent API
// with bounded retries, and returns the extracted text. The upstream API
// key never leaves the server.
//
// Usage:
//
//	# Start the gateway with default configuration
//	torii run
//
//	# Start with a custom configuration file
//	torii run --config /etc/torii/config.yaml
//
//	# Validate a configuration file
//	torii validate --config /etc/torii/config.yaml
//
//	# Show version information
//	torii version
package main

func main() {
	Execute()
}
