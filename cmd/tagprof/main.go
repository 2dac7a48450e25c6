// Profiling tag query churn:
// go build ./cmd/tagprof
// ./tagprof -mode cpu
// go tool pprof -http=":8000" ./tagprof cpu.pprof

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/l1jgo/ecscore/internal/core/ecs"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

var tagPool = []string{"red", "green", "blue", "mover", "visible", "enemy"}

func main() {
	mode := flag.String("mode", "cpu", "profile mode: cpu or mem")
	rounds := flag.Int("rounds", 20, "number of worlds to build")
	iters := flag.Int("iters", 200, "tag churn passes per world")
	entities := flag.Int("entities", 1000, "entities per world")
	flag.Parse()

	var opt func(*profile.Profile)
	switch *mode {
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfileAllocs
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}

	p := profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook)
	start := time.Now()
	members := run(*rounds, *iters, *entities)
	p.Stop()

	fmt.Printf("%d rounds, %d members seen, %s\n", *rounds, members, time.Since(start))
}

// run churns tags on every entity so tag queries keep admitting and evicting.
func run(rounds, iters, numEntities int) int {
	seen := 0
	for r := 0; r < rounds; r++ {
		w := ecs.NewWorld(struct{}{}, zap.NewNop())
		queries := make([]*ecs.TagQuery, 0, len(tagPool))
		for i := range tagPool {
			q, err := w.TagQuery(tagPool[i], tagPool[(i+1)%len(tagPool)])
			if err != nil {
				panic(err)
			}
			queries = append(queries, q)
		}

		all := make([]*ecs.Entity, 0, numEntities)
		for i := 0; i < numEntities; i++ {
			all = append(all, w.CreateEntity("", tagPool[i%len(tagPool)]))
		}

		for it := 0; it < iters; it++ {
			tag := tagPool[it%len(tagPool)]
			for i, e := range all {
				if (i+it)%2 == 0 {
					e.AddTag(tag)
				} else {
					e.RemoveTag(tag)
				}
			}
			for _, q := range queries {
				seen += q.Len()
			}
		}

		for _, e := range all {
			w.Kill(e)
		}
		w.FlushDestroyQueue()
	}
	return seen
}
