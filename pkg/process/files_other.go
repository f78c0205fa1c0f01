//go:build !windows

package process

func isCaseInsensitiveFS() bool { return false }
