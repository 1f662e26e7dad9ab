package ecs

// System is one step of a frame. Exported Query and Singleton fields are
// initialized when the system is registered.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees during one frame.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage

	stop error
}

// Stop ends a Run loop with err once the current frame completes.
func (f *UpdateFrame) Stop(err error) {
	if f.stop == nil {
		f.stop = err
	}
}
