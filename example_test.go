package intake_test

import (
	"context"
	"fmt"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/pkg/adapters/memory"
	"github.com/aretw0/intake/pkg/domain"
)

// ExampleEngine_Advance shows the error map produced by a failed step.
func ExampleEngine_Advance() {
	eng := intake.MustNew(domain.FormAuto, intake.WithDeliverer(memory.NewOutbox()))
	ctx := context.Background()

	state := eng.Start(ctx, "example")
	state, _, _ = eng.Update(ctx, state, "generalInfo", map[string]any{
		"insuredName": "",
		"address":     "123 St",
		"mobilePhone": "555-1212",
		"email":       "bad-email",
	})

	state, res, err := eng.Advance(ctx, state)
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Outcome, state.StepIndex)
	for _, path := range state.Errors.Paths() {
		fmt.Printf("%s: %s\n", path, state.Errors[path])
	}
	// Output:
	// validation_failed 0
	// generalInfo.email: invalid email format
	// generalInfo.insuredName: required
}
