package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/pullrefresh/pkg/animation"
	"github.com/go-drift/pullrefresh/pkg/pull"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, clk.Now().Sub(start))
}

func TestFakeClock_IgnoresNegativeAdvance(t *testing.T) {
	clk := NewFakeClock()
	clk.Advance(time.Second)

	now := clk.Advance(-time.Hour)
	assert.Equal(t, Epoch.Add(time.Second), now)
	assert.Equal(t, time.Second, clk.Elapsed())
}

func TestFakeClock_Install(t *testing.T) {
	clk := NewFakeClock()
	restore := clk.Install()
	clk.Advance(3 * time.Second)
	assert.Equal(t, Epoch.Add(3*time.Second), animation.Now())

	restore()
	assert.WithinDuration(t, time.Now(), animation.Now(), time.Minute)
}

func TestListTester_InstallsClock(t *testing.T) {
	tester := NewListTesterWithT(t, pull.Config{})

	start := animation.Now()
	tester.Clock().Advance(500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, animation.Now().Sub(start))
}

func TestListTester_CleanupRestoresClock(t *testing.T) {
	tester := NewListTester(pull.Config{})
	fake := tester.Clock()
	tester.Cleanup()

	fake.Advance(time.Hour)
	assert.WithinDuration(t, time.Now(), animation.Now(), time.Minute)
}
