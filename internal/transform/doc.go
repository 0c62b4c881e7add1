// Package transform converts rendered page bytes by piping them through
// external commands.
//
// A Transform is either a single command or a chain of commands. Chains are a
// left fold: the stdout of step i is the stdin of step i+1. Commands are split
// with POSIX shell word rules. A first word starting with "@" selects an
// in-process builtin instead of an executable:
//
//	@markdown   CommonMark + GFM to HTML (goldmark)
//	@identity   copy input to output
package transform
