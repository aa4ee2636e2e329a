// Package demo generates the scrolling "recent withdrawals" ticker shown on
// the landing page. The feed is synthetic and never touches real user data
// or the ledger.
package demo

import (
	"math/rand"
	"time"
)

// FeedItem is one synthetic withdrawal shown in the ticker.
type FeedItem struct {
	Name       string    `json:"name"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

var feedNames = []string{
	"Rahul S.", "Priya P.", "Amit K.", "Sneha G.", "Vikas S.", "Pooja V.",
}

const (
	minFeedAmount = 500
	maxFeedAmount = 9999
)

type Service interface {
	Feed(count int) []FeedItem
}

type service struct {
	rng *rand.Rand
}

func NewService() Service {
	return &service{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Feed returns count synthetic withdrawals, most recent first, each stamped
// within the last hour.
func (s *service) Feed(count int) []FeedItem {
	if count <= 0 {
		count = 10
	}
	now := time.Now()
	items := make([]FeedItem, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, FeedItem{
			Name:       feedNames[s.rng.Intn(len(feedNames))],
			Amount:     float64(minFeedAmount + s.rng.Intn(maxFeedAmount-minFeedAmount+1)),
			OccurredAt: now.Add(-time.Duration(i*3+s.rng.Intn(3)) * time.Minute),
		})
	}
	return items
}
