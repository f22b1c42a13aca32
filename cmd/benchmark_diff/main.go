package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/delaneyj/vnodeparty/pkg/core"
	"github.com/delaneyj/vnodeparty/pkg/hostdom"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	childrenKey = "children"
	repeatsKey  = "repeats"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_diff",
		Usage: "Count host operations of keyed reconciliation scenarios",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:  childrenKey,
				Usage: "Keyed list sizes",
				Value: []int64{10, 100, 1_000},
			},
			&cli.IntFlag{
				Name:  repeatsKey,
				Usage: "Timed repeats per scenario, the best is reported",
				Value: 5,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type scenario struct {
	name    string
	reorder func(keys []int, rnd *rand.Rand) []int
}

var scenarios = []scenario{
	{
		name: "swap last two",
		reorder: func(keys []int, _ *rand.Rand) []int {
			n := len(keys)
			keys[n-2], keys[n-1] = keys[n-1], keys[n-2]
			return keys
		},
	},
	{
		name: "reverse",
		reorder: func(keys []int, _ *rand.Rand) []int {
			for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
				keys[i], keys[j] = keys[j], keys[i]
			}
			return keys
		},
	},
	{
		name: "rotate right",
		reorder: func(keys []int, _ *rand.Rand) []int {
			n := len(keys)
			return append([]int{keys[n-1]}, keys[:n-1]...)
		},
	},
	{
		name: "drop half",
		reorder: func(keys []int, _ *rand.Rand) []int {
			return keys[:len(keys)/2]
		},
	},
	{
		name: "prepend ten",
		reorder: func(keys []int, _ *rand.Rand) []int {
			head := make([]int, 10)
			for i := range head {
				head[i] = len(keys) + i
			}
			return append(head, keys...)
		},
	},
	{
		name: "remove middle",
		reorder: func(keys []int, _ *rand.Rand) []int {
			mid := len(keys) / 2
			return append(keys[:mid:mid], keys[mid+1:]...)
		},
	},
	{
		name: "shuffle",
		reorder: func(keys []int, rnd *rand.Rand) []int {
			rnd.Shuffle(len(keys), func(a, b int) { keys[a], keys[b] = keys[b], keys[a] })
			return keys
		},
	},
}

type results struct {
	duration time.Duration
	creates  int
	inserts  int
	moves    int
	removes  int
	matches  bool
}

func keyedList(keys []int) *core.VNode {
	items := make([]*core.VNode, len(keys))
	for i, k := range keys {
		items[i] = core.H("li", core.Props{"key": k}, strconv.Itoa(k))
	}
	return core.H("ul", nil, items)
}

func runOnce(sc scenario, n int, seed int64) *results {
	host := hostdom.New()
	r := core.NewRenderer(host)
	root := hostdom.NewElement("main")

	keys := make([]int, n)
	for i := range keys {
		keys[i] = i
	}
	r.Render(keyedList(keys), root)
	next := sc.reorder(append([]int(nil), keys...), rand.New(rand.NewSource(seed)))
	vnode := keyedList(next)
	host.ResetOps()

	start := time.Now()
	r.Render(vnode, root)
	res := &results{
		duration: time.Since(start),
		creates:  host.Count(hostdom.OpCreateElement),
		inserts:  host.Count(hostdom.OpInsert) - host.Moves(),
		moves:    host.Moves(),
		removes:  host.Count(hostdom.OpRemove),
	}

	fresh := hostdom.NewElement("main")
	r.Render(keyedList(next), fresh)
	res.matches = hostdom.Fingerprint(fresh) == hostdom.Fingerprint(root)
	return res
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting keyed diff benchmark, please wait...")
	defer log.Print("Finished keyed diff benchmark")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"scenario", "size", "creates", "inserts", "moves", "removes", "time", "fingerprint",
	})

	repeats := int(cmd.Int(repeatsKey))
	if repeats < 1 {
		return fmt.Errorf("repeats must be at least 1, got %d", repeats)
	}
	for _, n := range cmd.IntSlice(childrenKey) {
		if n < 2 {
			return fmt.Errorf("children must be at least 2, got %d", n)
		}
		for _, sc := range scenarios {
			log.Printf("Running '%s' with %d children", sc.name, n)

			best := &results{duration: time.Hour}
			for i := 0; i < repeats; i++ {
				res := runOnce(sc, int(n), n)
				if res.duration < best.duration {
					best = res
				}
			}

			check := "ok"
			if !best.matches {
				check = "MISMATCH"
			}
			table.Append([]string{
				sc.name,
				humanize.Comma(n),
				humanize.Comma(int64(best.creates)),
				humanize.Comma(int64(best.inserts)),
				humanize.Comma(int64(best.moves)),
				humanize.Comma(int64(best.removes)),
				fmt.Sprint(best.duration),
				check,
			})
		}
	}
	table.Render()
	return nil
}
