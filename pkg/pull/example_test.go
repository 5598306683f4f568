package pull_test

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-drift/pullrefresh/pkg/pull"
)

func ExampleMachine() {
	nop := zerolog.Nop()
	m := pull.New(pull.Config{PullDistance: 60},
		pull.WithLogger(&nop),
		pull.WithOnRefresh(func() { fmt.Println("refresh requested") }),
	)
	m.AddListener(func(from, to pull.State) { fmt.Println(from, "->", to) })

	metrics := &pull.Metrics{OffsetY: -5, ViewportHeight: 600, ContentHeight: 2000}
	m.Grant(metrics)
	metrics.OffsetY = -75
	m.Scroll(metrics)
	m.Release()
	m.HideHeader()

	// Output:
	// none -> refresh-idle
	// refresh-idle -> will-refresh
	// will-refresh -> refreshing
	// refresh requested
	// refreshing -> none
}

func ExampleMachine_FooterState() {
	nop := zerolog.Nop()
	m := pull.New(pull.Config{}, pull.WithLogger(&nop))
	m.Grant(&pull.Metrics{OffsetY: 1410, ViewportHeight: 600, ContentHeight: 2000})

	state, shown := m.FooterState()
	fmt.Println(state, shown, m.InitialInfiniteOffset())
	// Output: infinite-idle true 10
}
