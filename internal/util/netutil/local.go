package netutil

// LocalSource yields the host's first global-scope IPv4 address, or ""
// when there is none.
type LocalSource interface {
	GlobalIPv4() (string, error)
}

// LocalSourceFunc adapts a function to LocalSource.
type LocalSourceFunc func() (string, error)

// GlobalIPv4 implements LocalSource.
func (f LocalSourceFunc) GlobalIPv4() (string, error) {
	return f()
}
