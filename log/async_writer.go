package log

import (
	"sync"

	"go.uber.org/zap/zapcore"
)

// asyncWriter 通过后台 goroutine 顺序写入底层 writer
// Sync 会等待此前排队的数据全部写完
type asyncWriter struct {
	writer zapcore.WriteSyncer
	ch     chan asyncOp
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// asyncOp 写入数据或同步请求（flushed 非 nil）
type asyncOp struct {
	data    []byte
	flushed chan error
}

func newAsyncWriter(ws zapcore.WriteSyncer) *asyncWriter {
	aw := &asyncWriter{
		writer: ws,
		ch:     make(chan asyncOp, 1024),
		done:   make(chan struct{}),
	}
	go aw.run()
	return aw
}

func (a *asyncWriter) Write(p []byte) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		// 已关闭，直接同步写入
		return a.writer.Write(p)
	}

	// zap 会复用缓冲区，必须复制
	cp := make([]byte, len(p))
	copy(cp, p)
	a.ch <- asyncOp{data: cp}
	return len(p), nil
}

func (a *asyncWriter) Sync() error {
	a.mu.RLock()
	if a.closed {
		a.mu.RUnlock()
		return a.writer.Sync()
	}
	flushed := make(chan error, 1)
	a.ch <- asyncOp{flushed: flushed}
	a.mu.RUnlock()
	return <-flushed
}

func (a *asyncWriter) run() {
	defer close(a.done)
	for op := range a.ch {
		if op.flushed != nil {
			op.flushed <- a.writer.Sync()
			continue
		}
		// 日志写入错误不应影响业务逻辑
		_, _ = a.writer.Write(op.data)
	}
}

// Close 停止接收新数据，等待队列写完后同步底层 writer
func (a *asyncWriter) Close() error {
	var err error
	a.once.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.ch)
		a.mu.Unlock()
		<-a.done
		err = a.writer.Sync()
	})
	return err
}
