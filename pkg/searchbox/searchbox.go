// Package searchbox is a headless, controlled search input. The box keeps no
// copy of the text: what it shows is always the caller's SearchTerm.
package searchbox

import (
	"reflect"
	"sync"
)

const Placeholder = "게시글을 검색해보세요..."

type Props struct {
	SearchTerm     string
	OnSearchChange func(value string)
	OnSearch       func()
	// CurrentCategory scopes the search. The box only carries it; the
	// owner reads it back through Query when building the request.
	CurrentCategory string
	// Trigger defaults to OnEnterOnly.
	Trigger TriggerPolicy
}

type SearchBox struct {
	mu    sync.RWMutex
	props Props
}

func New(props Props) *SearchBox {
	if props.Trigger == nil {
		props.Trigger = OnEnterOnly()
	}
	return &SearchBox{props: props}
}

// SetProps replaces the caller-owned state. A changed trigger policy stops
// the previous one first.
func (b *SearchBox) SetProps(props Props) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if props.Trigger == nil {
		props.Trigger = b.props.Trigger
	} else if !sameTrigger(props.Trigger, b.props.Trigger) {
		b.props.Trigger.Stop()
	}
	b.props = props
}

// sameTrigger reports whether a and b are the same policy. Policies whose
// dynamic type is not comparable are always treated as replaced.
func sameTrigger(a, b TriggerPolicy) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func (b *SearchBox) Value() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.props.SearchTerm
}

func (b *SearchBox) Category() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.props.CurrentCategory
}

func (b *SearchBox) TriggerName() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.props.Trigger.Name()
}

// Input handles one keystroke. value is the whole new text of the field.
func (b *SearchBox) Input(value string) {
	b.mu.RLock()
	onChange := b.props.OnSearchChange
	b.mu.RUnlock()

	if onChange != nil {
		onChange(value)
	}
}

// KeyUp handles one key release and lets the trigger policy decide whether
// the search runs.
func (b *SearchBox) KeyUp(key Key) {
	b.mu.RLock()
	trigger := b.props.Trigger
	b.mu.RUnlock()

	trigger.KeyUp(key, b.fire)
}

func (b *SearchBox) fire() {
	b.mu.RLock()
	onSearch := b.props.OnSearch
	b.mu.RUnlock()

	if onSearch != nil {
		onSearch()
	}
}

// Close stops a pending debounced search.
func (b *SearchBox) Close() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.props.Trigger.Stop()
}
