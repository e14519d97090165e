// Package deps checks the external binaries and directories tubeclip needs
// before a run starts. Results feed the status command.
package deps
