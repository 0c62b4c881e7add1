// Package site runs one mksite build.
//
// A Site is created per build from a loaded configuration. New enumerates the
// source and layout trees and compiles both template namespaces; Build then
// runs the named stages in order:
//
//	render     render every source page (template-ignored pages are read raw)
//	map        fan pages out into Mappings, one per target extension
//	transform  pipe Mapping content through its Transform
//	layout     wrap content in the closest matching layout
//	write      write every Mapping to its destination
//	static     merge the static tree into the output tree
//
// The first failing stage aborts the build with a *StageError. Files already
// written stay in place.
package site
