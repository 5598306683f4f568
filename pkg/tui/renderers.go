package tui

import "github.com/go-drift/pullrefresh/pkg/list"

// Default captions for each affordance.
const (
	CaptionRefreshIdle       = "pull down refresh..."
	CaptionWillRefresh       = "release to refresh..."
	CaptionRefreshing        = "refreshing..."
	CaptionInfiniteIdle      = "pull up to load more..."
	CaptionWillInfinite      = "release to load more..."
	CaptionInfiniting        = "loading..."
	CaptionInfiniteLoadedAll = "have loaded all data"
	CaptionEmpty             = "have no data"
)

// DefaultRenderers returns text affordances for every state. In-flight
// states are prefixed with indicator's output when indicator is non-nil.
func DefaultRenderers(styles Styles, indicator func() string) list.Renderers[string] {
	header := func(caption string) func() string {
		return func() string { return styles.Header.Render(caption) }
	}
	footer := func(caption string) func() string {
		return func() string { return styles.Footer.Render(caption) }
	}
	busy := func(style func(...string) string, caption string) func() string {
		return func() string {
			if indicator == nil {
				return style(caption)
			}
			return indicator() + " " + style(caption)
		}
	}
	return list.Renderers[string]{
		RefreshIdle:       header(CaptionRefreshIdle),
		WillRefresh:       header(CaptionWillRefresh),
		Refreshing:        busy(styles.Header.Render, CaptionRefreshing),
		InfiniteIdle:      footer(CaptionInfiniteIdle),
		WillInfinite:      footer(CaptionWillInfinite),
		Infiniting:        busy(styles.Footer.Render, CaptionInfiniting),
		InfiniteLoadedAll: footer(CaptionInfiniteLoadedAll),
		EmptyRow:          func() string { return styles.Empty.Render(CaptionEmpty) },
	}
}
