/*
Package actions implements the agent-facing fee actions.

Each action takes one JSON text input and returns one JSON text output:

	{"status":"success","message":"...","transaction":"<signature>"}
	{"status":"error","message":"...","code":"<code or UNKNOWN_ERROR>"}

The call boundary is total. Malformed input, invalid addresses, client failures and
panics all come back as an error envelope; nothing is returned as a Go error.
*/
package actions
