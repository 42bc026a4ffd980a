// Package mkvmerge builds mkvmerge argument lists from structured merge
// descriptions: output/title globals, per-input track selection and
// per-track flags, and file attachments.
//
// The package is a pure data-to-argv transform; execution happens in the
// runner package, which consumes the [Command] through its Argv/String
// contract.
package mkvmerge
