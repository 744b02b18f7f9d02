// Package output provides terminal output helpers for vsclone:
// a byte-count progress bar for downloads and formatters for the
// manifest summary (table or JSON).
package output
