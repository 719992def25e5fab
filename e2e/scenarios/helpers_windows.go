//go:build windows

package scenarios

const defaultShells = "cmd"
