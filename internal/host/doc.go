// Package host starts and supervises the application-host process — the
// Streamlit server that actually serves the optimizer app. The launcher never
// binds the port itself; the port is pass-through argv to the host. The host
// runs in the foreground with inherited stdio and its exit code is propagated
// unchanged.
package host
