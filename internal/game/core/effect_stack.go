package core

// EffectStack is the engine's work list: an ordered sequence of pending
// effects. The front effect executes next. Executing an effect commonly
// prepends newly discovered effects, which must run before whatever was
// already queued, so the stack supports bulk front insertion preserving the
// inserted slice's order. Value type: mutations return new stacks sharing the
// untouched tail.
type EffectStack struct {
	items []Effect
}

// NewEffectStack builds a stack whose front is effects[0].
func NewEffectStack(effects ...Effect) EffectStack {
	return EffectStack{items: append([]Effect(nil), effects...)}
}

// IsEmpty reports whether no effect is pending.
func (es EffectStack) IsEmpty() bool {
	return len(es.items) == 0
}

// Len returns the number of pending effects.
func (es EffectStack) Len() int {
	return len(es.items)
}

// Peek returns the front effect without removing it.
func (es EffectStack) Peek() (Effect, bool) {
	if len(es.items) == 0 {
		return nil, false
	}
	return es.items[0], true
}

// Pop removes the front effect, returning the remaining stack and the effect.
// Popping an empty stack panics: the phase machine only pops after checking.
func (es EffectStack) Pop() (EffectStack, Effect) {
	if len(es.items) == 0 {
		panic("core: pop of empty effect stack")
	}
	return EffectStack{items: es.items[1:]}, es.items[0]
}

// PushFront inserts effects ahead of everything pending; effects[0] becomes
// the new front.
func (es EffectStack) PushFront(effects ...Effect) EffectStack {
	if len(effects) == 0 {
		return es
	}
	items := make([]Effect, 0, len(effects)+len(es.items))
	items = append(items, effects...)
	return EffectStack{items: append(items, es.items...)}
}

// PushBack appends effects after everything pending, preserving their order.
func (es EffectStack) PushBack(effects ...Effect) EffectStack {
	if len(effects) == 0 {
		return es
	}
	items := make([]Effect, 0, len(es.items)+len(effects))
	items = append(items, es.items...)
	return EffectStack{items: append(items, effects...)}
}

// All returns the pending effects front-first.
func (es EffectStack) All() []Effect {
	return append([]Effect(nil), es.items...)
}
