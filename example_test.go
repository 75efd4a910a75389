package jotter_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/pkg/core"
)

// Example_basic creates two notes, pins the second and exports the collection.
func Example_basic() {
	store, err := jotter.New("",
		jotter.WithAdapter("memory"),
		jotter.WithIDGenerator(core.SequentialID(1)),
	)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	if _, err := store.Create(ctx, "buy milk"); err != nil {
		log.Fatal(err)
	}
	walk, err := store.Create(ctx, "walk dog")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := store.TogglePin(ctx, walk.ID); err != nil {
		log.Fatal(err)
	}

	for _, n := range store.List(ctx) {
		fmt.Printf("%d %s fixed=%t\n", n.ID, n.Content, n.Fixed)
	}

	out, err := store.Export(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
	// Output:
	// 2 walk dog fixed=true
	// 1 buy milk fixed=false
	// ID,Content,Fixed?
	// 1,buy milk,false
	// 2,walk dog,true
}

// Example_notFound shows how a missing id is reported.
func Example_notFound() {
	store, err := jotter.New("", jotter.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}

	err = store.Update(context.Background(), 42, "nope")
	var nf *jotter.NotFoundError
	fmt.Println(errors.As(err, &nf), errors.Is(err, jotter.ErrNotFound))
	// Output:
	// true true
}
