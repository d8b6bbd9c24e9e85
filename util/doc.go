// Package util holds small string helpers for handling credentials and
// endpoint settings read from the environment.
package util
