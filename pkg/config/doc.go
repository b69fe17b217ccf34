/*
Package config provides typed configuration for the Torii gateway.

Configuration is loaded once at process start from a YAML file, then layered:
defaults are applied, environment variables (TORII_SECTION_FIELD) override
file values, and the result is validated. Secrets (the upstream API key and
the verifier credential bundle) are normally supplied via environment
variables rather than the file.

Validation is structural only. A missing upstream API key or credential
bundle does not fail startup: the gateway starts in a degraded mode that
rejects requests as misconfigured, which keeps the failure observable
instead of crash-looping the process.

The package also provides a singleton accessor for the loaded configuration
and an fsnotify-based file watcher for hot reload of operator-tunable
settings.
*/
package config
