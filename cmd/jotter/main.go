package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/jotter/pkg/core"
)

func main() {
	Execute()
}

// report prints err for the user. Unknown ids get a short message instead of the error chain.
func report(w io.Writer, err error) {
	var nf *core.NotFoundError
	if errors.As(err, &nf) {
		fmt.Fprintf(w, "Error: no note with id %d\n", nf.ID)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
