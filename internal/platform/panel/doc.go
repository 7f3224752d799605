// Package panel talks to the Pterodactyl panel web UI.
//
// The panel exposes no API for minting node install tokens, so Client
// drives the same cookie-authenticated endpoints the admin pages use:
// it primes the CSRF cookie, logs in, and posts to the node token route
// with the token echoed back in a header.
//
// Credentials for the login come from the file the panel installer writes.
package panel
