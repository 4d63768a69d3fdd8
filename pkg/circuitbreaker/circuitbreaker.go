// Package circuitbreaker 熔断器
//
// 三种状态：
//   - CLOSED：请求正常通过，统计连续失败次数，达到阈值转为OPEN
//   - OPEN：请求直接返回ErrOpen，OpenTimeout之后转为HALF_OPEN
//   - HALF_OPEN：放行最多HalfOpenMaxRequests个探测请求，成功转CLOSED，失败转回OPEN
//
// 只有调用方判定为"失败"的错误才计数，例如唯一约束冲突这类业务错误不应触发熔断。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpen 熔断器处于打开状态（或半开状态探测名额已满）
var ErrOpen = errors.New("circuit breaker is open")

// Config 熔断器配置
type Config struct {
	// FailureThreshold 连续失败多少次后熔断
	FailureThreshold uint32

	// OpenTimeout OPEN状态持续时间
	OpenTimeout time.Duration

	// HalfOpenMaxRequests 半开状态下允许同时探测的请求数，0按1处理
	HalfOpenMaxRequests uint32
}

// Breaker 熔断器
type Breaker struct {
	name string
	cfg  Config
	now  func() time.Time

	mu          sync.Mutex
	state       State
	generation  uint64 // 每次状态切换递增，过期的请求结果不再计数
	failures    uint32 // CLOSED状态下的连续失败数
	inFlight    uint32 // HALF_OPEN状态下已放行的探测请求数
	openedUntil time.Time

	onStateChange func(name string, from, to State)
}

// New 创建熔断器
//
//	cb := circuitbreaker.New("postgres", circuitbreaker.Config{
//	    FailureThreshold: 5,
//	    OpenTimeout:      10 * time.Second,
//	})
func New(name string, cfg Config) *Breaker {
	if cfg.HalfOpenMaxRequests == 0 {
		cfg.HalfOpenMaxRequests = 1
	}
	return &Breaker{name: name, cfg: cfg, now: time.Now}
}

// OnStateChange 设置状态变化回调（记录日志、更新指标）
// 回调在持有锁时执行，不能再调用Breaker的方法
func (b *Breaker) OnStateChange(fn func(name string, from, to State)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onStateChange = fn
}

// Execute 在熔断保护下执行req
// isFailure判断req返回的错误是否计入失败；为nil时所有非nil错误都计入
func (b *Breaker) Execute(req func() error, isFailure func(error) bool) error {
	generation, err := b.before()
	if err != nil {
		return err
	}

	err = req()

	failed := err != nil
	if failed && isFailure != nil {
		failed = isFailure(err)
	}
	b.after(generation, failed)

	return err
}

// State 当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current(b.now())
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current(b.now()) {
	case StateOpen:
		return b.generation, ErrOpen
	case StateHalfOpen:
		if b.inFlight >= b.cfg.HalfOpenMaxRequests {
			return b.generation, ErrOpen
		}
		b.inFlight++
	}
	return b.generation, nil
}

func (b *Breaker) after(generation uint64, failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	state := b.current(now)
	if generation != b.generation {
		return
	}

	switch state {
	case StateClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		if failed {
			b.setState(StateOpen, now)
		} else {
			b.setState(StateClosed, now)
		}
	}
}

// current OPEN超时后转为HALF_OPEN
func (b *Breaker) current(now time.Time) State {
	if b.state == StateOpen && !now.Before(b.openedUntil) {
		b.setState(StateHalfOpen, now)
	}
	return b.state
}

func (b *Breaker) setState(state State, now time.Time) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state
	b.generation++
	b.failures = 0
	b.inFlight = 0
	if state == StateOpen {
		b.openedUntil = now.Add(b.cfg.OpenTimeout)
	}

	if b.onStateChange != nil {
		b.onStateChange(b.name, prev, state)
	}
}
