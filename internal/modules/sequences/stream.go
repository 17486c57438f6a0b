package sequences

import "sync"

// Batch is one page of generated sequences.
type Batch struct {
	Sequences []ActionSequence `json:"sequences"`
	Number    int              `json:"number"`

	// MoreAvailable reports whether another non-empty batch follows.
	MoreAvailable bool `json:"more_available"`

	// TotalBatches is the exact batch count, known only once the
	// generator is exhausted. Zero means still unknown.
	TotalBatches int `json:"total_batches"`
}

// BatchStream pulls sequences from a running generator one batch at a
// time. It holds a single batch of lookahead so MoreAvailable is exact
// without materializing the full result set.
type BatchStream struct {
	source    <-chan ActionSequence
	quit      chan struct{}
	batchSize int

	mu        sync.Mutex
	lookahead []ActionSequence
	number    int
	exhausted bool
	closed    bool
}

func newBatchStream(source <-chan ActionSequence, quit chan struct{}, batchSize int) *BatchStream {
	bs := &BatchStream{
		source:    source,
		quit:      quit,
		batchSize: batchSize,
	}
	bs.lookahead = bs.pull()
	return bs
}

// Next returns the next batch. The second return value is false once
// the stream is exhausted or closed.
func (bs *BatchStream) Next() (Batch, bool) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if bs.closed || len(bs.lookahead) == 0 {
		return Batch{}, false
	}

	current := bs.lookahead
	bs.lookahead = bs.pull()
	bs.number++

	batch := Batch{
		Sequences:     current,
		Number:        bs.number,
		MoreAvailable: len(bs.lookahead) > 0,
	}
	if !batch.MoreAvailable {
		batch.TotalBatches = bs.number
	}

	return batch, true
}

// Close stops the generator goroutine and releases the stream. Safe
// to call more than once.
func (bs *BatchStream) Close() {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if bs.closed {
		return
	}
	bs.closed = true
	close(bs.quit)

	// Drain so the producer unblocks and exits
	for range bs.source {
	}
}

// pull reads up to one batch worth of sequences from the source
func (bs *BatchStream) pull() []ActionSequence {
	if bs.exhausted {
		return nil
	}

	batch := make([]ActionSequence, 0, bs.batchSize)
	for len(batch) < bs.batchSize {
		seq, ok := <-bs.source
		if !ok {
			bs.exhausted = true
			break
		}
		batch = append(batch, seq)
	}

	return batch
}
