//go:build !tilequeue_debug

package tilequeue

const debugging = false

func assert(bool, string) {}
