package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/delaneyj/vnodeparty/pkg/core"
	"github.com/delaneyj/vnodeparty/pkg/hostdom"
	"github.com/delaneyj/vnodeparty/pkg/reactivity"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey    = "iters"
	widthsKey   = "widths"
	heightsKey  = "heights"
	childrenKey = "children"
	pgoKey      = "pgo"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Time reactive propagation and keyed reconciliation",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Samples per benchmark",
				Value: 100,
			},
			&cli.IntSliceFlag{
				Name:  widthsKey,
				Usage: "Number of effects reading the end of each chain",
				Value: []int64{1, 10, 100, 1_000},
			},
			&cli.IntSliceFlag{
				Name:  heightsKey,
				Usage: "Length of each computed chain",
				Value: []int64{1, 10, 100},
			},
			&cli.IntSliceFlag{
				Name:  childrenKey,
				Usage: "Keyed list sizes",
				Value: []int64{10, 100, 1_000},
			},
			&cli.BoolFlag{
				Name:  pgoKey,
				Usage: "Write a CPU profile to default.pgo",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool(pgoKey) {
		f, err := os.Create("default.pgo")
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Int(itersKey))
	log.Printf("warming up")
	benchmarkPropagate(iters, cmd.IntSlice(widthsKey), cmd.IntSlice(heightsKey), false)
	benchmarkPropagate(iters, cmd.IntSlice(widthsKey), cmd.IntSlice(heightsKey), true)
	benchmarkKeyed(iters, cmd.IntSlice(childrenKey))
	benchmarkComponents(iters, cmd.IntSlice(childrenKey))
	return nil
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRow(table.Row{
		name,
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
	})
}

func benchmarkPropagate(iters int, ww, hh []int64, shouldRender bool) {
	tbl := newTable("Propagation")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := reactivity.CreateReactiveSystem()
			src := reactivity.NewRef(rs, 1)
			for i := int64(0); i < w; i++ {
				last := reactivity.Computed(rs, func() int {
					return src.Value().(int) + 1
				})
				for j := int64(1); j < h; j++ {
					prev := last
					last = reactivity.Computed(rs, func() int {
						return prev.Value() + 1
					})
				}
				reactivity.Effect(rs, func() any {
					return last.Value()
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Peek().(int) + 1)
				tach.AddTime(time.Since(start))
			}
			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func keyedList(keys []int) *core.VNode {
	items := make([]*core.VNode, len(keys))
	for i, k := range keys {
		label := strconv.Itoa(k)
		items[i] = core.H("li", core.Props{"key": k, "class": "row"}, label)
	}
	return core.H("ul", nil, items)
}

func benchmarkKeyed(iters int, sizes []int64) {
	tbl := newTable("Keyed reconciliation")
	rnd := rand.New(rand.NewSource(1))

	for _, n := range sizes {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})
		r := core.NewRenderer(hostdom.New())
		root := hostdom.NewElement("main")

		keys := make([]int, n)
		for i := range keys {
			keys[i] = i
		}
		r.Render(keyedList(keys), root)

		for i := 0; i < iters; i++ {
			next := append([]int(nil), keys...)
			rnd.Shuffle(len(next), func(a, b int) { next[a], next[b] = next[b], next[a] })
			vnode := keyedList(next)

			start := time.Now()
			r.Render(vnode, root)
			tach.AddTime(time.Since(start))
		}
		appendCalc(tbl, fmt.Sprintf("shuffle: %d", n), tach)
	}
	tbl.Render()
}

func benchmarkComponents(iters int, sizes []int64) {
	tbl := newTable("Component updates")

	for _, n := range sizes {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})
		r := core.NewRenderer(hostdom.New())
		root := hostdom.NewElement("main")
		count := reactivity.NewRef(r.ReactiveSystem(), 0)

		cell := &core.Component{
			Name: "Cell",
			Render: func(self *core.PublicInstance) *core.VNode {
				return core.H("td", nil, strconv.Itoa(count.Value().(int)))
			},
		}
		cells := make([]*core.VNode, n)
		for i := range cells {
			cells[i] = core.H(cell, core.Props{"key": i})
		}
		r.Render(core.H("tr", nil, cells), root)

		for i := 0; i < iters; i++ {
			start := time.Now()
			count.SetValue(i + 1)
			r.NextTick(nil)
			tach.AddTime(time.Since(start))
		}
		appendCalc(tbl, fmt.Sprintf("update: %d components", n), tach)
	}
	tbl.Render()
}
