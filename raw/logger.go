package raw

import (
	"fmt"
	"os"
	"time"
)

// Logger 简洁的进度日志系统，用于采集循环
type Logger struct {
	stepStart  time.Time
	totalStart time.Time
	Quiet      bool // 只输出警告
}

// NewLogger 创建日志记录器
func NewLogger() *Logger {
	return &Logger{
		totalStart: time.Now(),
	}
}

// Step 开始一个处理步骤
// 格式: [步骤名] 参数 ...
func (l *Logger) Step(name string, params ...interface{}) {
	l.stepStart = time.Now()
	if l.Quiet {
		return
	}
	if len(params) > 0 {
		fmt.Printf("[%s] %v ... ", name, params[0])
	} else {
		fmt.Printf("[%s] ", name)
	}
}

// Done 完成当前步骤
// 格式: → 结果 (耗时)
func (l *Logger) Done(result string) {
	if l.Quiet {
		return
	}
	elapsed := time.Since(l.stepStart)
	if elapsed > 100*time.Millisecond {
		fmt.Printf("→ %s (%.2fs)\n", result, elapsed.Seconds())
	} else {
		fmt.Printf("→ %s\n", result)
	}
}

// Frame 输出单帧进度
func (l *Logger) Frame(index int, total int, name string) {
	if l.Quiet {
		return
	}
	fmt.Printf("[%d/%d] %s\n", index+1, total, name)
}

// Total 输出保存帧数和总耗时
func (l *Logger) Total(saved int) {
	total := time.Since(l.totalStart)
	fmt.Printf("\n✓ 保存 %d 帧, 总耗时: %.2fs\n", saved, total.Seconds())
}

// Info 输出信息（不计时）
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Quiet {
		return
	}
	fmt.Printf("  • "+format+"\n", args...)
}

// Warn 输出警告
func (l *Logger) Warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "  ⚠ "+format+"\n", args...)
}
