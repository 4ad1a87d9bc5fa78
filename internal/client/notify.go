package client

import (
	"sync"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DefaultDismissAfter 通知顯示時間
const DefaultDismissAfter = 5 * time.Second

type Notification struct {
	Message  string
	Severity Severity
	seq      uint64
}

// Notifier 一次只顯示一則通知，新的會取代舊的
type Notifier struct {
	DismissAfter time.Duration

	mu      sync.Mutex
	current *Notification
	seq     uint64
	sink    func(Notification)
	pending sync.WaitGroup
}

// NewNotifier sink 在每則通知顯示時被呼叫，可為 nil
func NewNotifier(sink func(Notification)) *Notifier {
	return &Notifier{DismissAfter: DefaultDismissAfter, sink: sink}
}

func (n *Notifier) Show(msg string, sev Severity) {
	n.mu.Lock()
	n.seq++
	note := Notification{Message: msg, Severity: sev, seq: n.seq}
	n.current = &note
	dismiss := n.DismissAfter
	sink := n.sink
	n.mu.Unlock()

	if sink != nil {
		sink(note)
	}
	time.AfterFunc(dismiss, func() { n.dismiss(note.seq) })
}

// dismiss 只收掉同一則通知，已被取代的不動
func (n *Notifier) dismiss(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil && n.current.seq == seq {
		n.current = nil
	}
}

// Current 回傳目前顯示中的通知
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// After 延遲顯示，排定後無法取消
func (n *Notifier) After(d time.Duration, msg string, sev Severity) {
	n.pending.Add(1)
	time.AfterFunc(d, func() {
		defer n.pending.Done()
		n.Show(msg, sev)
	})
}

// Wait 等待所有 After 排定的通知顯示完
func (n *Notifier) Wait() {
	n.pending.Wait()
}
