package kernel

// Error describes a low-level error. Errors are declared as package-level
// pointers to Error values so that reporting one never needs the allocator;
// this keeps them usable from interrupt context and from the emulated core's
// fault path alike.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
