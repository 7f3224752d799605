// Package artisan drives the panel's artisan console to create and list nodes.
//
// Commands run through a Runner so tests can substitute a fake process.
package artisan
