// Package logger fans log output out to the console and to live
// subscribers such as the admin websocket.
package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

const subscriberBuffer = 100

// Broadcaster is an io.Writer that copies every write to an underlying
// writer and to each subscriber channel. Slow subscribers drop lines instead
// of blocking the logger.
type Broadcaster struct {
	out io.Writer

	mu          sync.Mutex
	subscribers map[chan string]struct{}
}

func NewBroadcaster(out io.Writer) *Broadcaster {
	return &Broadcaster{out: out, subscribers: make(map[chan string]struct{})}
}

var Instance = NewBroadcaster(os.Stdout)

func (b *Broadcaster) Write(p []byte) (int, error) {
	if _, err := b.out.Write(p); err != nil {
		return 0, err
	}

	msg := string(p)
	b.mu.Lock()
	for ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.Unlock()

	return len(p), nil
}

func (b *Broadcaster) Subscribe() chan string {
	ch := make(chan string, subscriberBuffer)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes ch. Calling it twice is harmless.
func (b *Broadcaster) Unsubscribe(ch chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[ch]; !ok {
		return
	}
	delete(b.subscribers, ch)
	close(ch)
}

// Setup routes the standard logger through Instance.
func Setup() {
	log.SetOutput(Instance)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
}
