//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyMap = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyTab, KeyTab},
}

var buttonMap = []struct {
	button ebiten.MouseButton
	mb     MouseButton
}{
	{ebiten.MouseButtonLeft, MouseLeft},
	{ebiten.MouseButtonMiddle, MouseMiddle},
	{ebiten.MouseButtonRight, MouseRight},
}

// inputPoller turns ebiten's polled input state into events. Positions are
// converted from device to logical pixels.
type inputPoller struct {
	cursorX, cursorY int
	touches          []ebiten.TouchID
}

func (p *inputPoller) poll(kbd *hostKeyboard, ptr *hostPointer, dpr float32) {
	if dpr <= 0 {
		dpr = 1
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		kbd.emit(KeyEvent{Press: true, Rune: r})
	}
	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			kbd.emit(KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			kbd.emit(KeyEvent{Code: m.code, Press: false})
		}
	}

	x, y := ebiten.CursorPosition()
	fx, fy := float32(x)/dpr, float32(y)/dpr
	if x != p.cursorX || y != p.cursorY {
		p.cursorX, p.cursorY = x, y
		ptr.emit(PointerEvent{Action: PointerMove, X: fx, Y: fy})
	}
	for _, m := range buttonMap {
		if inpututil.IsMouseButtonJustPressed(m.button) {
			ptr.emit(PointerEvent{Action: PointerDown, Button: m.mb, X: fx, Y: fy})
		}
		if inpututil.IsMouseButtonJustReleased(m.button) {
			ptr.emit(PointerEvent{Action: PointerUp, Button: m.mb, X: fx, Y: fy})
		}
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		ptr.emit(PointerEvent{Action: PointerWheel, X: fx, Y: fy, WheelY: float32(-wy)})
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		ptr.emit(PointerEvent{ID: int(id) + 1, Action: PointerDown, Button: Touch, X: float32(tx) / dpr, Y: float32(ty) / dpr})
	}
	p.touches = ebiten.AppendTouchIDs(p.touches[:0])
	for _, id := range p.touches {
		if inpututil.IsTouchJustReleased(id) || inpututil.TouchPressDuration(id) <= 1 {
			continue
		}
		tx, ty := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		if tx == px && ty == py {
			continue
		}
		ptr.emit(PointerEvent{ID: int(id) + 1, Action: PointerMove, Button: Touch, X: float32(tx) / dpr, Y: float32(ty) / dpr})
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		tx, ty := inpututil.TouchPositionInPreviousTick(id)
		ptr.emit(PointerEvent{ID: int(id) + 1, Action: PointerUp, Button: Touch, X: float32(tx) / dpr, Y: float32(ty) / dpr})
	}
}
