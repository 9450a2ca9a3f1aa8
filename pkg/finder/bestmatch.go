package finder

import (
	"strings"

	"github.com/xrash/smetrics"

	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/wait"
)

// bestMatchThreshold is the minimum Jaro-Winkler similarity for a window
// title to be accepted as the target window.
const bestMatchThreshold = 0.8

// BestMatchWindow returns the top-level window whose title is closest to
// title. An exact match wins outright; otherwise the highest Jaro-Winkler
// similarity above the threshold is accepted, which keeps window acquisition
// resilient to minor title variations (version suffixes, unsaved markers).
//
// This fallback exists only for top-level window acquisition. Ordinary
// element search never best-matches, to avoid silently mismatching targets.
func BestMatchWindow(backend core.Backend, title string) (core.Element, error) {
	windows, err := backend.TopWindows()
	if err != nil {
		return nil, wait.NotReady("enumerating top-level windows: %v", err)
	}

	var best core.Element
	bestScore := 0.0
	for _, w := range windows {
		name := w.Name()
		if name == title {
			return w, nil
		}
		score := smetrics.JaroWinkler(strings.ToLower(name), strings.ToLower(title), 0.7, 4)
		if score > bestScore {
			best = w
			bestScore = score
		}
	}
	if best == nil || bestScore < bestMatchThreshold {
		return nil, wait.NotReady("no top-level window resembling %q (best score %.2f of %d windows)",
			title, bestScore, len(windows))
	}
	return best, nil
}
