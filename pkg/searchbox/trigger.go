package searchbox

import (
	"sync"
	"time"
)

// Key identifies the key released in a KeyUp event, using the DOM key names.
type Key string

const (
	KeyEnter   Key = "Enter"
	KeyShift   Key = "Shift"
	KeyControl Key = "Control"
	KeyEscape  Key = "Escape"
)

// TriggerPolicy decides when a key release runs the search.
type TriggerPolicy interface {
	Name() string
	// KeyUp is called on every key release. fire runs the search; a policy
	// may call it synchronously, later, or not at all.
	KeyUp(key Key, fire func())
	// Stop drops any pending trigger.
	Stop()
}

// OnEveryKeyup fires on every key release, whichever key it was.
func OnEveryKeyup() TriggerPolicy {
	return everyKeyup{}
}

// OnEnterOnly fires only when Enter is released.
func OnEnterOnly() TriggerPolicy {
	return enterOnly{}
}

// Debounced fires once, d after the last key release.
func Debounced(d time.Duration) TriggerPolicy {
	return &debounced{delay: d}
}

type everyKeyup struct{}

func (everyKeyup) Name() string { return "onEveryKeyup" }

func (everyKeyup) KeyUp(_ Key, fire func()) { fire() }

func (everyKeyup) Stop() {}

type enterOnly struct{}

func (enterOnly) Name() string { return "onEnterOnly" }

func (enterOnly) KeyUp(key Key, fire func()) {
	if key == KeyEnter {
		fire()
	}
}

func (enterOnly) Stop() {}

type debounced struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func (d *debounced) Name() string { return "debounced(" + d.delay.String() + ")" }

func (d *debounced) KeyUp(_ Key, fire func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fire)
}

func (d *debounced) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
