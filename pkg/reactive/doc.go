// Package reactive provides the observable cells used by storefront views.
//
// A Signal holds a value and notifies its subscribers when the value changes.
// Reads performed inside a tracked context (an Effect body, or a function run
// via WithListener) subscribe the current listener automatically, so UI code
// can re-evaluate whenever a cell it looked at is written.
//
// # Cells
//
//	count := reactive.NewSignal(0)
//	count.Set(5)
//	count.Update(func(n int) int { return n + 1 })
//	fmt.Println(count.Peek()) // 6
//
// External observers receive a ReadSignal, which exposes no write methods.
//
// # Effects
//
//	e := reactive.CreateEffect(func() reactive.Cleanup {
//	    fmt.Println("loading:", loading.Get())
//	    return nil
//	})
//	defer e.Dispose()
//
// # Batching
//
// Batch groups several writes into one notification phase. Listeners that
// depend on more than one of the written cells are notified once, after the
// outermost batch on the current goroutine returns.
//
//	reactive.Batch(func() {
//	    loading.Set(false)
//	    data.Set(result)
//	})
package reactive
