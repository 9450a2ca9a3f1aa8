package core

import "fmt"

// EnvironmentError indicates an unrecoverable problem with the application
// under test or the connection to it: process crashed, bridge unreachable,
// launch failed. During suite launch it is fatal for the whole run; during a
// test case it ends that case with errored status.
type EnvironmentError struct {
	Op  string // operation that failed: "connect", "screenshot", ...
	Err error
}

func (e *EnvironmentError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("environment error during %s", e.Op)
	}
	return fmt.Sprintf("environment error during %s: %v", e.Op, e.Err)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }
