// emldump builds a sample computation with the instruction-emitting execution
// context and prints the disassembly of the resulting program. It is a
// development aid for inspecting what the operation library lowers to.
//
// Usage:
//
//	emldump [-name main] [-size 4] [-o file]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/backends/emitter"
	"github.com/emlift/emlift/types/layouts"
	"github.com/emlift/emlift/value"
)

var (
	flagName   = flag.String("name", "main", "Name of the emitted program.")
	flagSize   = flag.Int("size", 4, "Vector size of the sample computation.")
	flagOutput = flag.String("o", "", "Write the disassembly to this file instead of stdout.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	ctx := emitter.New(*flagName).(*emitter.Context)
	done := backends.Use(ctx)
	defer done()

	size := *flagSize
	x := make([]float32, size)
	y := make([]float32, size)
	for i := range x {
		x[i] = float32(i + 1)
		y[i] = float32(size - i)
	}
	v1 := value.NewVector(value.Import(x, layouts.Make(size)))
	v2 := value.NewVector(value.Import(y, layouts.Make(size)))

	// An elementwise loop nest, a BLAS call and a reduction, to show each
	// shape of emitted code.
	sum := v1.Add(v2)
	value.Dot(v1, v2)
	value.Accumulate(sum, value.Const[float32](0)).Value().Release()
	sum.Value().Release()

	prog := ctx.Program()
	klog.V(1).Infof("emitted program %s (%q): %d instructions", prog.ID(), prog.Name(), prog.NumInstructions())
	if *flagOutput != "" {
		must.M(os.WriteFile(*flagOutput, []byte(prog.String()), 0644))
		return
	}
	fmt.Print(prog.String())
}
