package observable

// Subscription is returned by every On* call. Unsubscribe is idempotent and
// takes effect immediately, including for a dispatch already in progress.
type Subscription interface {
	Unsubscribe()
}

// SubscriptionFunc adapts a function into a Subscription. The function runs
// at most once.
type SubscriptionFunc func()

// Unsubscribe calls the function.
func (fn SubscriptionFunc) Unsubscribe() {
	if fn != nil {
		fn()
	}
}

// Group bundles subscriptions so they can be released together. A nil Group
// is not usable; the zero value is.
type Group struct {
	subs     []Subscription
	disposed bool
}

// Add registers subscriptions with the group. Adding to a disposed group
// releases the subscriptions right away.
func (g *Group) Add(subs ...Subscription) {
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		if g.disposed {
			sub.Unsubscribe()
			continue
		}
		g.subs = append(g.subs, sub)
	}
}

// Len returns the number of live subscriptions held by the group.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.subs)
}

// Disposed reports whether Dispose has been called.
func (g *Group) Disposed() bool {
	return g != nil && g.disposed
}

// Dispose releases every subscription in reverse registration order.
func (g *Group) Dispose() {
	if g == nil || g.disposed {
		return
	}
	g.disposed = true
	for i := len(g.subs) - 1; i >= 0; i-- {
		g.subs[i].Unsubscribe()
	}
	g.subs = nil
}

type listener struct {
	fn     Listener
	active bool
}
