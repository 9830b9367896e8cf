package scene

import "github.com/hubastard/groveui/engine/core"

// FlyController3D: WASD move on the ground plane, Q/E down/up, wheel dolly.
// It only sees input the UI did not consume.
type FlyController3D struct {
	MoveSpeed float32
	ZoomSpeed float32
	Camera    *Camera3D
}

func NewFlyController3D(cam *Camera3D) *FlyController3D {
	return &FlyController3D{
		MoveSpeed: 5,
		ZoomSpeed: 1,
		Camera:    cam,
	}
}

func (cc *FlyController3D) Update(in *core.Input, dt float32) {
	speed := cc.MoveSpeed * dt
	fwd := cc.Camera.Forward()
	fwd[1] = 0
	fwd = Normalize(fwd)
	right := Normalize(Cross(fwd, cc.Camera.Up))

	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Move(MulS(fwd, speed))
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Move(MulS(fwd, -speed))
	}
	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Move(MulS(right, -speed))
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Move(MulS(right, speed))
	}
	if in.IsKeyDown(core.KeyQ) {
		cc.Camera.Move([3]float32{0, -speed, 0})
	}
	if in.IsKeyDown(core.KeyE) {
		cc.Camera.Move([3]float32{0, speed, 0})
	}
}

// HandleEvent dollies the eye toward the target on scroll.
func (cc *FlyController3D) HandleEvent(ev core.Event) bool {
	s, ok := ev.(core.EventScroll)
	if !ok {
		return false
	}
	step := MulS(cc.Camera.Forward(), float32(s.Yoff)*cc.ZoomSpeed)
	dist := Sub(cc.Camera.Target, cc.Camera.Eye)
	if Dot(step, step) >= Dot(dist, dist) && s.Yoff > 0 {
		return true
	}
	cc.Camera.Eye = Add(cc.Camera.Eye, step)
	return true
}
