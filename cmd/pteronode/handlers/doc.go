// Package handlers implements the pteronode commands.
//
// Collaborators that touch the host (process runner, privilege check,
// terminal detection, prompts, standard streams) are package variables so
// tests can replace them.
package handlers
