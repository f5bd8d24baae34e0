package metrics

import (
	"encoding/json"
	"sync"
)

// Item holds the counts for one written record.
type Item struct {
	Key    string `json:"key"`
	Bytes  int    `json:"bytes"`
	Tokens int    `json:"tokens"`
	Lines  int    `json:"lines"`
}

func (it *Item) add(bytes, tokens, lines int) {
	it.Bytes += bytes
	it.Tokens += tokens
	it.Lines += lines
}

type job struct {
	index   int
	content []byte
}

// OutputMetrics counts records on a pool of workers. Items keep the order in
// which their keys were first added.
type OutputMetrics struct {
	mu    sync.Mutex
	items []Item
	index map[string]int

	sendMu sync.RWMutex // guards jobs against close during send
	jobs   chan job
	wg     sync.WaitGroup
	ctr    Counter
}

// NewOutputMetrics starts workers goroutines counting with counter.
func NewOutputMetrics(counter Counter, workers int) *OutputMetrics {
	if workers < 1 {
		workers = 1
	}

	m := &OutputMetrics{
		index: make(map[string]int),
		jobs:  make(chan job, workers*2),
		ctr:   counter,
	}

	// workers range over their own copy; Wait nils the field.
	jobs := m.jobs
	m.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go m.worker(jobs)
	}
	return m
}

func (m *OutputMetrics) worker(jobs <-chan job) {
	defer m.wg.Done()
	for j := range jobs {
		m.count(j)
	}
}

func (m *OutputMetrics) count(j job) {
	bytes, tokens, lines := m.ctr.Count(string(j.content))
	m.mu.Lock()
	m.items[j.index].add(bytes, tokens, lines)
	m.mu.Unlock()
}

// Add queues content to be counted under key. Content added after Wait is
// counted synchronously.
func (m *OutputMetrics) Add(key string, content []byte) {
	m.mu.Lock()
	i, ok := m.index[key]
	if !ok {
		i = len(m.items)
		m.items = append(m.items, Item{Key: key})
		m.index[key] = i
	}
	m.mu.Unlock()

	j := job{index: i, content: content}

	m.sendMu.RLock()
	defer m.sendMu.RUnlock()
	if m.jobs == nil {
		m.count(j)
		return
	}
	m.jobs <- j
}

// Wait blocks until every queued job is counted. It is idempotent.
func (m *OutputMetrics) Wait() {
	m.sendMu.Lock()
	if m.jobs != nil {
		close(m.jobs)
		m.jobs = nil
	}
	m.sendMu.Unlock()

	m.wg.Wait()
}

// Items returns a copy of the counted items in insertion order.
func (m *OutputMetrics) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Item(nil), m.items...)
}

// Total sums every item.
func (m *OutputMetrics) Total() Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := Item{Key: "TOTAL"}
	for _, it := range m.items {
		total.add(it.Bytes, it.Tokens, it.Lines)
	}
	return total
}

func (m *OutputMetrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Items())
}
