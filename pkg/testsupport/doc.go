// Package testsupport holds wizard fixtures shared by renderer, submission
// and server tests.
package testsupport
