// internal/sched/burstqueue.go

package sched

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// burstQueue is the running process plus a red-black tree of waiting
// processes ordered by ascending burst time. Among equal bursts the most
// recently queued process comes first, so the tree reproduces "insert
// before the first process whose burst is >= the new one".
type burstQueue struct {
	head *Process
	rbt  *redblacktree.Tree
	rank uint64
}

func newBurstQueue() *burstQueue {
	return &burstQueue{rbt: redblacktree.NewWith(cmp)}
}

func (q *burstQueue) empty() bool { return q.head == nil }

func (q *burstQueue) size() int {
	if q.head == nil {
		return 0
	}
	return 1 + q.rbt.Size()
}

// push queues p behind the head in burst order.
func (q *burstQueue) push(p *Process) {
	q.rank++
	q.rbt.Put(nodeKey{burst: p.BurstTime, rank: q.rank}, p)
}

// replaceHead makes p the running process and queues the displaced head
// ahead of every waiting process with the same burst.
func (q *burstQueue) replaceHead(p *Process) {
	if q.head != nil {
		q.push(q.head)
	}
	q.head = p
}

// popHead drops the head and promotes the shortest waiting process.
func (q *burstQueue) popHead() {
	q.head = nil
	node := q.rbt.Left()
	if node == nil {
		return
	}
	next := node.Value.(*Process)
	q.rbt.Remove(node.Key)
	q.head = next
}

func (q *burstQueue) waiting() []*Process {
	return toProcesses(q.rbt.Values())
}

func (q *burstQueue) list() []*Process {
	if q.head == nil {
		return nil
	}
	out := make([]*Process, 0, q.size())
	out = append(out, q.head)
	return append(out, q.waiting()...)
}
