package notifier

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"
)

type AnalysisFetcher interface {
	FetchAnalysis(ctx context.Context, pair string) (string, error)
}

type MessageSender interface {
	SendMessage(text string) error
}

// Notifier republishes endpoint commentary to a chat on a fixed interval.
// One cycle at a time, no catch-up after restarts, no jitter.
type Notifier struct {
	pairs    []string
	fetcher  AnalysisFetcher
	sender   MessageSender
	interval time.Duration
	rng      *rand.Rand
}

func New(pairs []string, fetcher AnalysisFetcher, sender MessageSender, interval time.Duration) *Notifier {
	return &Notifier{
		pairs:    pairs,
		fetcher:  fetcher,
		sender:   sender,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run executes one cycle immediately, then one per interval. Blocks until
// ctx is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	log.Printf("notifier starting: %d pairs, interval %s", len(n.pairs), n.interval)

	n.RunCycle(ctx)

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("notifier stopped")
			return
		case <-ticker.C:
			n.RunCycle(ctx)
		}
	}
}

// RunCycle picks a random pair, fetches its commentary, and forwards it.
// Failures are logged and the cycle is skipped; nothing crashes the loop.
func (n *Notifier) RunCycle(ctx context.Context) {
	pair := n.pairs[n.rng.Intn(len(n.pairs))]
	log.Printf("selected trading pair: %s", pair)

	text, err := n.fetcher.FetchAnalysis(ctx, pair)
	if err != nil {
		log.Printf("fetch analysis for %s: %v", pair, err)
		return
	}

	msg := fmt.Sprintf("📊 **Analysis for %s**\n%s", pair, text)
	if err := n.sender.SendMessage(msg); err != nil {
		log.Printf("send message for %s: %v", pair, err)
		return
	}
	log.Printf("analysis for %s sent", pair)
}
