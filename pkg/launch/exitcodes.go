package launch

// Exit codes for launcher-side failures. The target program's own exit
// code passes through untouched in spawn mode.
const (
	ExitPanic          = 101
	ExitPathError      = 102
	ExitEnvFileError   = 103
	ExitExecutionError = 104
	ExitInvalidArgs    = 105
	ExitIOError        = 106
)
