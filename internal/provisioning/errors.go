package provisioning

import (
	"errors"
	"fmt"
)

// Kind classifies a provisioning failure.
type Kind string

const (
	// KindPrivilege means the process lacks the privileges it needs.
	KindPrivilege Kind = "privilege"
	// KindConfig means the credentials file or other configuration is missing or malformed.
	KindConfig Kind = "config"
	// KindNetwork means address discovery failed. Never fatal.
	KindNetwork Kind = "network"
	// KindAuth means the panel login did not complete.
	KindAuth Kind = "auth"
	// KindProvisioning means the node-creation command failed.
	KindProvisioning Kind = "provisioning"
	// KindToken means the install token could not be issued.
	KindToken Kind = "token"
	// KindParse means the node list could not be read. Never fatal.
	KindParse Kind = "parse"
)

// Sentinels for errors.Is checks against a Kind.
var (
	ErrPrivilege    = &Error{Kind: KindPrivilege}
	ErrConfig       = &Error{Kind: KindConfig}
	ErrNetwork      = &Error{Kind: KindNetwork}
	ErrAuth         = &Error{Kind: KindAuth}
	ErrProvisioning = &Error{Kind: KindProvisioning}
	ErrToken        = &Error{Kind: KindToken}
	ErrParse        = &Error{Kind: KindParse}
)

var _ error = &Error{}

// Error is a classified provisioning failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Op != "":
		return e.Op
	}
	return string(e.Kind) + " error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Wrap classifies err under kind. It returns nil for a nil err.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of the outermost *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsFatal reports whether err must stop the run.
// Network and parse errors degrade to defaults instead.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	return kind != KindNetwork && kind != KindParse
}
