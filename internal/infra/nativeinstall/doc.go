// Package nativeinstall invokes the OS-appropriate mechanism to install
// the editor itself: the system package manager on Linux, direct
// execution of the installer on Windows. It is the single place where
// platform-specific install side effects live, so the apply algorithm
// stays platform-agnostic.
package nativeinstall
