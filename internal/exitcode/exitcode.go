// Package exitcode lists the process exit codes of the songmatch CLI.
package exitcode

const (
	Success        = 0
	RuntimeFailure = 1
	InvalidUsage   = 2
	InvalidConfig  = 3
	NoMatch        = 4
	CasesFailed    = 5
	Interrupted    = 130
)
