// Package fetch downloads artifacts over HTTP, streaming them to disk
// with byte-count progress. Filenames are taken from the caller, the
// Content-Disposition header, or a generated fallback, in that order.
package fetch
