// Package wizard asks the operator for the node settings and confirms the
// detected node ID.
//
// Forms use charmbracelet/huh. Parsing of the answers is kept separate
// from the forms so it can be tested without a terminal: an empty answer
// means the default, and any unparseable number falls back to all the
// numeric defaults.
package wizard
