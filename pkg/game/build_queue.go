package game

import (
	"context"
	"log"
	"sync"

	"github.com/decker502/penball/pkg/geometry"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/types"
	"golang.org/x/sync/semaphore"
)

// BuildJob 一次笔画几何构建任务
type BuildJob struct {
	StrokeID ink.StrokeID
	Token    uint64 // 提交时的占位令牌，安装前必须与当前占位一致
	Category types.ObjectType
	Strokes  []ink.Stroke // 共享同一ID的笔画
	SplitY   []float64    // 绘图坐标中的分割高度
}

// BuildResult 构建结果，只在模拟线程上被安装
type BuildResult struct {
	StrokeID ink.StrokeID
	Token    uint64
	Category types.ObjectType
	Records  []geometry.BodyRecord
}

// BuildStroke 分段并光栅化，纯函数
func BuildStroke(job BuildJob, opts geometry.Options) BuildResult {
	segments := ink.SegmentAll(job.Strokes, job.SplitY)
	return BuildResult{
		StrokeID: job.StrokeID,
		Token:    job.Token,
		Category: job.Category,
		Records:  geometry.Build(segments, opts),
	}
}

// BuildQueue 后台几何构建队列
//
// Submit 立即返回，任务在受信号量限制的 goroutine 中执行；
// 结果进入邮箱，由模拟线程在每帧开始时通过 Drain 取走。
type BuildQueue struct {
	sem  *semaphore.Weighted
	opts geometry.Options

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	mailbox []BuildResult
}

// NewBuildQueue 创建构建队列
//
// 参数：
//   - workers: 最大并发数，小于 1 时按 1 处理
//   - opts: 光栅化参数
func NewBuildQueue(workers int, opts geometry.Options) *BuildQueue {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BuildQueue{
		sem:    semaphore.NewWeighted(int64(workers)),
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Submit 提交任务
func (q *BuildQueue) Submit(job BuildJob) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := q.sem.Acquire(q.ctx, 1); err != nil {
			// 队列已关闭
			return
		}
		defer q.sem.Release(1)

		result := BuildStroke(job, q.opts)

		q.mu.Lock()
		q.mailbox = append(q.mailbox, result)
		q.mu.Unlock()
	}()
}

// Drain 取走所有已完成的结果
func (q *BuildQueue) Drain() []BuildResult {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.mailbox) == 0 {
		return nil
	}
	out := q.mailbox
	q.mailbox = nil
	return out
}

// Wait 等待所有已提交的任务结束
func (q *BuildQueue) Wait() {
	q.wg.Wait()
}

// Close 取消尚未开始的任务并等待进行中的任务结束，未取走的结果被丢弃
func (q *BuildQueue) Close() {
	q.cancel()
	q.wg.Wait()
	if dropped := len(q.Drain()); dropped > 0 {
		log.Printf("[BuildQueue] Dropped %d undelivered results on close", dropped)
	}
}
