// Package propedit builds mkvpropedit argument lists for in-place property
// edits: segment info and track properties via edit selectors, and
// attachment add/replace/delete operations.
//
// Like package mkvmerge this is a pure data-to-argv transform; the runner
// package executes the resulting [Command].
package propedit
