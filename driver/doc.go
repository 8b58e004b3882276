// Package driver schedules engine steps for an animated front end.
//
// A Driver owns one engine and serializes every call into it, so a manual
// "Step" button and a running animation never overlap. The animation ticks at
// the current rung of a delay ladder; Faster and Slower move along the ladder
// and take effect on the next tick without restarting the loop.
//
//	d := driver.New(eng, func(o *driver.Options) {
//	    o.OnStep = func(res kmeansviz.StepResult) { render(res) }
//	})
//	_ = d.Start(ctx)
//	d.Faster()
//	err := d.Wait() // returns when the run converges
package driver
