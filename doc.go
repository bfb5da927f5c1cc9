// Package beacon is a lightweight in-process publish/subscribe dispatcher.
//
// An Emitter maps dot-delimited topic patterns to ordered listener lists.
// Emitting an event invokes every listener whose pattern matches, in
// registration order, synchronously on the caller's goroutine. A failing
// listener is isolated: its error or panic goes to the diagnostic sink and
// dispatch continues.
//
// # Topics and Wildcards
//
// Events are named hierarchically with dots; patterns may use wildcards:
//
//	user.created          exact
//	user.*                one segment: user.created, not user.created.extra
//	user.**               the rest: user, user.created, user.a.b.c
//	*                     everything
//
// See the topic package for exact matching rules.
//
// # Usage
//
//	em := beacon.New()
//
//	cancel, err := em.OnFunc("user.*", func(ctx context.Context, args ...any) error {
//	    fmt.Println("user event:", args)
//	    return nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cancel()
//
//	em.Emit(context.Background(), "user.created", "ada")
//
// Each Emitter instance is independent; create one per subsystem or share a
// single instance, as suits the application. All methods are safe for
// concurrent use.
//
// # Rate Limiting
//
// The rate package provides debounce and throttle combinators for listeners
// or producers that fire in bursts.
package beacon
