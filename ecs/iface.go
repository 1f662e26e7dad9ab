package ecs

import "unsafe"

// iface mirrors the runtime layout of a non-empty any. For a pointer stored
// in an interface, data is the pointer itself.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func pointerOf(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}
