// Package pattern mines content-shape templates from the raw lines of a
// batch, complementing the failure-pattern aggregation with a view of
// what the log text itself looks like.
package pattern

import (
	"sort"
	"sync"

	"github.com/go-errors/errors"
	"github.com/google/uuid"
	"github.com/jaeyo/go-drain3/pkg/drain3"

	"logsift/pkg/session"
)

// Template is a discovered log template. The pattern uses "<*>" for
// variable tokens.
type Template struct {
	ID      uuid.UUID
	Pattern string
	Count   int
}

// Miner clusters similar log lines online using the Drain algorithm.
type Miner struct {
	mu    sync.Mutex
	drain *drain3.Drain
	// clusterUUIDs maps Drain cluster IDs to stable UUIDs for consistent
	// template identification.
	clusterUUIDs map[int64]uuid.UUID
}

// NewMiner creates a Miner with default Drain parameters.
func NewMiner() (*Miner, error) {
	d, err := drain3.NewDrain(
		drain3.WithDepth(4),
		drain3.WithSimTh(0.4),
		drain3.WithExtraDelimiter([]string{"|", "=", ","}),
	)
	if err != nil {
		return nil, errors.Errorf("create drain: %w", err)
	}
	return &Miner{
		drain:        d,
		clusterUUIDs: make(map[int64]uuid.UUID),
	}, nil
}

// Feed processes a batch of raw lines through the Drain algorithm.
func (m *Miner) Feed(lines []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, line := range lines {
		cluster, _, err := m.drain.AddLogMessage(line)
		if err != nil {
			return errors.Errorf("drain add: %w", err)
		}
		if cluster == nil {
			continue
		}
		if _, ok := m.clusterUUIDs[cluster.ClusterId]; !ok {
			m.clusterUUIDs[cluster.ClusterId] = uuid.New()
		}
	}
	return nil
}

// Templates returns all clusters discovered so far, most frequent first.
func (m *Miner) Templates() []Template {
	m.mu.Lock()
	defer m.mu.Unlock()

	clusters := m.drain.GetClusters()
	templates := make([]Template, 0, len(clusters))
	for _, c := range clusters {
		id, ok := m.clusterUUIDs[c.ClusterId]
		if !ok {
			continue
		}
		templates = append(templates, Template{
			ID:      id,
			Pattern: c.GetTemplate(),
			Count:   int(c.Size),
		})
	}
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Count > templates[j].Count
	})
	return templates
}

// Mine feeds every raw line of the session through a fresh Miner and
// returns the discovered templates. Single-line clusters are dropped:
// without a second similar line Drain cannot generalize, so the "pattern"
// is just the literal text.
func Mine(sess *session.Session) ([]Template, error) {
	miner, err := NewMiner()
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, sess.Len())
	for _, r := range sess.Records() {
		lines = append(lines, r.Raw)
	}
	if err := miner.Feed(lines); err != nil {
		return nil, err
	}

	var generalized []Template
	for _, t := range miner.Templates() {
		if t.Count <= 1 {
			continue
		}
		generalized = append(generalized, t)
	}
	return generalized, nil
}
