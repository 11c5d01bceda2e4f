//go:build tilequeue_debug

package tilequeue

const debugging = true

func assert(cond bool, message string) {
	if !cond {
		panic(message)
	}
}
