// Package mmap maps local snapshot files read-only.
//
//	r, err := mmap.Map("people/part-0001.snap")
//	if err != nil { ... }
//	defer r.Close()
//
//	data, err := r.Data()
//
// Regions are advised for sequential reads unless Options.Sequential is
// cleared; Options.Prefetch additionally requests read-ahead of the whole
// file. Windows ignores both hints.
package mmap
