package main

import (
	"fmt"

	"github.com/wetigu/ai-playground/pkg/reactive"
	"github.com/wetigu/ai-playground/pkg/resource"
)

// observable is the part of an accessor the tracer reads.
type observable interface {
	Status() resource.Status
	Error() error
}

// watch prints each state change of acc while --trace is set. The returned
// func stops watching.
func (a *app) watch(name string, acc observable) func() {
	if !a.trace {
		return func() {}
	}

	eff := reactive.CreateEffect(func() reactive.Cleanup {
		status := acc.Status()
		if err := acc.Error(); err != nil {
			fmt.Fprintf(a.errOut, "trace: %s %s: %v\n", name, status, err)
		} else {
			fmt.Fprintf(a.errOut, "trace: %s %s\n", name, status)
		}
		return nil
	})
	return eff.Dispose
}
