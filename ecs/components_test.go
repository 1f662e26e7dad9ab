package ecs_test

import "github.com/plus3/pentis/ecs"

type Cell struct {
	X, Y int
}

type Velocity struct {
	DY int
}

type Label string

type Score struct {
	Value int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Cell](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Label](registry)
	return registry
}
